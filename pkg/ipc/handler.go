package ipc

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"strconv"

	"github.com/aretw0/mininotes/pkg/core"
	"github.com/aretw0/mininotes/pkg/metrics"
)

// NoteService is the subset of core.Service the boundary calls.
type NoteService interface {
	List(ctx context.Context) ([]core.Note, error)
	Get(ctx context.Context, id string) (core.Note, error)
	Create(ctx context.Context, in core.CreateInput) (core.Note, error)
	Update(ctx context.Context, id string, patch core.Patch) (core.Note, error)
	Delete(ctx context.Context, id string) bool
	Seed(ctx context.Context, count int) (int, error)
	DirectorySizeBytes(ctx context.Context) (int64, error)
}

// Handler dispatches requests to a NoteService.
type Handler struct {
	notes  NoteService
	logger *slog.Logger
}

// NewHandler creates a Handler. logger may be nil.
func NewHandler(notes NoteService, logger *slog.Logger) *Handler {
	return &Handler{notes: notes, logger: logger}
}

// Handle validates and executes a single request.
func (h *Handler) Handle(ctx context.Context, req Request) Response {
	resp := h.dispatch(ctx, req)
	resp.Seq = req.Seq

	if h.logger != nil {
		if resp.OK {
			h.logger.Debug("ipc call", "channel", req.Channel, "ms", resp.Ms)
		} else {
			h.logger.Debug("ipc call rejected", "channel", req.Channel, "error", resp.Error)
		}
	}
	return resp
}

func (h *Handler) dispatch(ctx context.Context, req Request) Response {
	switch req.Channel {
	case ChannelList:
		return h.list(ctx)
	case ChannelGet:
		return h.get(ctx, req.Args)
	case ChannelCreate:
		return h.create(ctx, req.Args)
	case ChannelUpdate:
		return h.update(ctx, req.Args)
	case ChannelDelete:
		return h.delete(ctx, req.Args)
	case ChannelSeed:
		return h.seed(ctx, req.Args)
	case ChannelFootprint:
		return h.footprint(ctx)
	case ChannelMemory:
		return h.memory()
	default:
		return fail(MsgUnknownChannel)
	}
}

func (h *Handler) list(ctx context.Context) Response {
	r, err := metrics.Measure(func() ([]core.Note, error) {
		return h.notes.List(ctx)
	})
	if err != nil {
		return h.internal(err)
	}
	return ok(r.Data, r.Ms)
}

func (h *Handler) get(ctx context.Context, args []json.RawMessage) Response {
	id, valid := idArg(args)
	if !valid {
		return fail(MsgInvalidID)
	}

	r, err := metrics.Measure(func() (core.Note, error) {
		return h.notes.Get(ctx, id)
	})
	if errors.Is(err, core.ErrNotFound) {
		return fail(MsgNotFound)
	}
	if err != nil {
		return h.internal(err)
	}
	return ok(r.Data, r.Ms)
}

func (h *Handler) create(ctx context.Context, args []json.RawMessage) Response {
	var in struct {
		Title   *string `json:"title"`
		Content *string `json:"content"`
	}
	if !decodeArg(args, 0, &in) || in.Title == nil || in.Content == nil {
		return fail(MsgInvalidInput)
	}

	r, err := metrics.Measure(func() (core.Note, error) {
		return h.notes.Create(ctx, core.CreateInput{Title: *in.Title, Content: *in.Content})
	})
	if err != nil {
		return h.internal(err)
	}
	return ok(r.Data, r.Ms)
}

func (h *Handler) update(ctx context.Context, args []json.RawMessage) Response {
	id, valid := idArg(args)
	if !valid {
		return fail(MsgInvalidID)
	}

	var patch core.Patch
	if len(args) > 1 && !decodeArg(args, 1, &patch) {
		return fail(MsgInvalidInput)
	}
	if patch.IsEmpty() {
		return fail(MsgEmptyPatch)
	}

	r, err := metrics.Measure(func() (core.Note, error) {
		return h.notes.Update(ctx, id, patch)
	})
	if errors.Is(err, core.ErrNotFound) {
		return fail(MsgNotFound)
	}
	if err != nil {
		return h.internal(err)
	}
	return ok(r.Data, r.Ms)
}

func (h *Handler) delete(ctx context.Context, args []json.RawMessage) Response {
	id, valid := idArg(args)
	if !valid {
		return fail(MsgInvalidID)
	}

	r, _ := metrics.Measure(func() (bool, error) {
		return h.notes.Delete(ctx, id), nil
	})
	if !r.Data {
		return fail(MsgNotFound)
	}
	return ok(true, r.Ms)
}

func (h *Handler) seed(ctx context.Context, args []json.RawMessage) Response {
	count := countArg(args)

	r, err := metrics.Measure(func() (int, error) {
		return h.notes.Seed(ctx, count)
	})
	if err != nil {
		return h.internal(err)
	}
	return ok(SeedResult{Created: r.Data}, r.Ms)
}

func (h *Handler) footprint(ctx context.Context) Response {
	r, err := metrics.Measure(func() (metrics.FootprintReport, error) {
		return metrics.Footprint(ctx, h.notes)
	})
	if err != nil {
		return h.internal(err)
	}
	return ok(r.Data, r.Ms)
}

func (h *Handler) memory() Response {
	r, _ := metrics.Measure(func() (metrics.MemoryReport, error) {
		return metrics.MemoryUsage(), nil
	})
	return ok(r.Data, r.Ms)
}

// internal reports an I/O fault to the caller without hiding it.
func (h *Handler) internal(err error) Response {
	if h.logger != nil {
		h.logger.Error("ipc call failed", "error", err)
	}
	return fail(err.Error())
}

func decodeArg(args []json.RawMessage, i int, v any) bool {
	if i >= len(args) {
		return false
	}
	return json.Unmarshal(args[i], v) == nil
}

func idArg(args []json.RawMessage) (string, bool) {
	var id string
	if !decodeArg(args, 0, &id) {
		return "", false
	}
	return id, ValidID(id)
}

// countArg reads a seed count. Numbers and numeric strings are accepted and
// truncated toward zero; anything else counts as 0.
func countArg(args []json.RawMessage) int {
	var n float64
	if !decodeArg(args, 0, &n) {
		var s string
		if !decodeArg(args, 0, &s) {
			return 0
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		n = f
	}
	if math.IsNaN(n) {
		return 0
	}
	return int(max(min(n, math.MaxInt32), math.MinInt32))
}
