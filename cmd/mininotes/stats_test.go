package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/mininotes/pkg/adapters/fs"
	"github.com/aretw0/mininotes/pkg/core"
	"github.com/aretw0/mininotes/pkg/metrics"
)

func TestBuildStoreTree(t *testing.T) {
	swept := time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)
	tree := buildStoreTree(
		core.ServiceState{SerializedUpdates: true, ActiveLocks: 2},
		fs.RepositoryState{Path: "/data", Extension: ".json", WatcherActive: true, LastSweep: &swept},
		metrics.FootprintReport{DataBytes: 1234},
	)

	assert.Equal(t, "/data", tree.Metadata["path"])
	if assert.Len(t, tree.Children, 2) {
		svc, repo := tree.Children[0], tree.Children[1]
		assert.Equal(t, "true", svc.Metadata["serialized"])
		assert.Equal(t, "2", svc.Metadata["locks"])
		assert.Equal(t, "1234", repo.Metadata["bytes"])
		assert.Equal(t, "09:30:00", repo.Metadata["sweep"])
		if assert.Len(t, repo.Children, 1) {
			assert.Equal(t, "running", repo.Children[0].Status)
		}
	}
}
