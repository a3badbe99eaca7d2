package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"buildings-server/config"
	"buildings-server/dao"
	"buildings-server/metrics"
	"buildings-server/models"
)

const STASH_WRITE_TIMEOUT = 30 * time.Second

// ArtifactCache reads and writes scene/buffer pairs in the stash under a
// fixed account and project.
type ArtifactCache struct {
	stash   dao.Stash
	account string
	project string
	tasks   *BackgroundTasks
}

func NewArtifactCache(stash dao.Stash, account, project string) *ArtifactCache {
	return &ArtifactCache{
		stash:   stash,
		account: account,
		project: project,
		tasks: NewBackgroundTasks(STASH_WRITE_TIMEOUT, func(string, error) {
			metrics.StashStoreFailTotal.Inc()
		}),
	}
}

// StashPath is the stash path of a request URI relative to the API prefix.
func (c *ArtifactCache) StashPath(requestURI string) string {
	return fmt.Sprintf("/%s/%s%s", c.account, c.project, requestURI)
}

// Lookup fetches both artifacts concurrently. It reports a hit only when
// both are present; any error other than a missing entry is returned.
func (c *ArtifactCache) Lookup(ctx context.Context, keys models.ArtifactKeys) (*models.CachedArtifactPair, bool, error) {
	var (
		wg                  sync.WaitGroup
		scene, buffer       []byte
		sceneErr, bufferErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		scene, sceneErr = c.stash.Find(ctx, c.account, c.project, config.STASH_KIND_GLTF, keys.ScenePath)
	}()
	go func() {
		defer wg.Done()
		buffer, bufferErr = c.stash.Find(ctx, c.account, c.project, config.STASH_KIND_GLTF, keys.BufferPath)
	}()
	wg.Wait()

	for _, err := range []error{sceneErr, bufferErr} {
		if err != nil && !errors.Is(err, dao.ErrNotFound) {
			return nil, false, fmt.Errorf("stash lookup %s: %w", keys.ScenePath, err)
		}
	}
	if sceneErr != nil || bufferErr != nil {
		log.Printf("[ArtifactCache] miss for %s", keys.ScenePath)
		metrics.StashMissesTotal.Inc()
		return nil, false, nil
	}

	log.Printf("[ArtifactCache] hit for %s", keys.ScenePath)
	metrics.StashHitsTotal.Inc()
	return &models.CachedArtifactPair{SceneDocument: scene, BinaryBuffer: buffer}, true, nil
}

// Store writes both artifacts in the background and returns immediately.
func (c *ArtifactCache) Store(ctx context.Context, keys models.ArtifactKeys, pair models.CachedArtifactPair) {
	c.tasks.Go(ctx, "stash "+keys.ScenePath, func(ctx context.Context) error {
		if err := c.stash.Save(ctx, c.account, c.project, config.STASH_KIND_GLTF, keys.ScenePath, pair.SceneDocument); err != nil {
			return fmt.Errorf("save scene: %w", err)
		}
		if err := c.stash.Save(ctx, c.account, c.project, config.STASH_KIND_GLTF, keys.BufferPath, pair.BinaryBuffer); err != nil {
			return fmt.Errorf("save buffer: %w", err)
		}
		log.Printf("[ArtifactCache] stored %s", keys.ScenePath)
		return nil
	})
}

// Wait blocks until pending stores have finished.
func (c *ArtifactCache) Wait() {
	c.tasks.Wait()
}
