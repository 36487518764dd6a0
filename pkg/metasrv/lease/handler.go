// Package lease records datanode leases from heartbeats received by the
// metadata server.
package lease

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"go.uber.org/atomic"

	"github.com/strata-db/strata/pkg/metasrv/kv"
)

// RequestHeader is the common header of metadata server requests.
type RequestHeader struct {
	ClusterID uint64
	MemberID  uint64
}

// Peer identifies a datanode.
type Peer struct {
	ID   uint64
	Addr string
}

// HeartbeatRequest is sent periodically by every datanode.
type HeartbeatRequest struct {
	Header *RequestHeader
	Peer   *Peer
}

// Config configures datanode leases.
type Config struct {
	// LeaseDuration is how long a lease stays valid after a heartbeat.
	LeaseDuration time.Duration `yaml:"lease_duration"`
}

// RegisterFlags registers the flags of cfg.
func (cfg *Config) RegisterFlags(f *flag.FlagSet) {
	f.DurationVar(&cfg.LeaseDuration, "metasrv.datanode-lease-duration", 30*time.Second, "Duration a datanode lease stays valid after its last heartbeat.")
}

// Validate returns an error if cfg is invalid.
func (cfg *Config) Validate() error {
	if cfg.LeaseDuration <= 0 {
		return errors.Errorf("invalid datanode lease duration %s: must be positive", cfg.LeaseDuration)
	}
	return nil
}

// Context is the state shared by heartbeat handlers.
type Context struct {
	Store kv.Store

	// SkipAll makes handlers ignore every heartbeat while set, for example
	// while the server is not the leader.
	SkipAll *atomic.Bool
}

// IsSkipAll reports whether heartbeats are currently ignored.
func (c *Context) IsSkipAll() bool {
	return c.SkipAll != nil && c.SkipAll.Load()
}

// Handler stores a datanode lease for every heartbeat carrying a peer.
type Handler struct {
	logger log.Logger
	now    func() time.Time
}

// NewHandler returns a new lease handler.
func NewHandler(logger log.Logger) *Handler {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Handler{
		logger: log.With(logger, "handler", "datanode_lease"),
		now:    time.Now,
	}
}

// Handle records the lease of the peer of req. Heartbeats without a peer are
// ignored. A missing header is treated as cluster 0.
func (h *Handler) Handle(ctx context.Context, req *HeartbeatRequest, hctx *Context) error {
	if hctx.IsSkipAll() || req == nil || req.Peer == nil {
		return nil
	}

	key := Key{NodeID: req.Peer.ID}
	if req.Header != nil {
		key.ClusterID = req.Header.ClusterID
	}
	value := Value{
		TimestampMillis: h.now().UnixMilli(),
		NodeAddr:        req.Peer.Addr,
	}

	level.Info(h.logger).Log("msg", "received heartbeat", "key", key, "node_addr", value.NodeAddr, "timestamp_millis", value.TimestampMillis)

	data, err := value.Marshal()
	if err != nil {
		return fmt.Errorf("encoding lease of %s: %w", key, err)
	}
	if err := hctx.Store.Put(ctx, key.Bytes(), data); err != nil {
		return fmt.Errorf("storing lease of %s: %w", key, err)
	}
	return nil
}

// Alive returns the leases of cluster whose last heartbeat is not older than
// the configured lease duration.
func Alive(ctx context.Context, store kv.Store, clusterID uint64, cfg Config, now time.Time) (map[Key]Value, error) {
	kvs, err := store.Range(ctx, ClusterPrefix(clusterID))
	if err != nil {
		return nil, err
	}

	cutoff := now.Add(-cfg.LeaseDuration).UnixMilli()
	alive := make(map[Key]Value, len(kvs))
	for _, entry := range kvs {
		key, err := ParseKey(string(entry.Key))
		if err != nil {
			return nil, err
		}
		value, err := ParseValue(entry.Value)
		if err != nil {
			return nil, fmt.Errorf("lease of %s: %w", key, err)
		}
		if value.TimestampMillis >= cutoff {
			alive[key] = value
		}
	}
	return alive, nil
}
