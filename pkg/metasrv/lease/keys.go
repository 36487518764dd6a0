package lease

import (
	"fmt"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

// KeyPrefix is the prefix of all datanode lease keys.
const KeyPrefix = "__meta_dnlease"

// Key identifies the lease of a datanode within a cluster.
type Key struct {
	ClusterID uint64
	NodeID    uint64
}

// String returns the store key, formatted as
// `__meta_dnlease-<cluster_id>-<node_id>`.
func (k Key) String() string {
	return fmt.Sprintf("%s-%d-%d", KeyPrefix, k.ClusterID, k.NodeID)
}

// Bytes returns the store key.
func (k Key) Bytes() []byte { return []byte(k.String()) }

// ClusterPrefix returns the key prefix shared by all leases of cluster.
func ClusterPrefix(clusterID uint64) []byte {
	return []byte(fmt.Sprintf("%s-%d-", KeyPrefix, clusterID))
}

// ParseKey parses a key produced by [Key.String].
func ParseKey(s string) (Key, error) {
	rest, ok := strings.CutPrefix(s, KeyPrefix+"-")
	if !ok {
		return Key{}, fmt.Errorf("invalid lease key %q: missing prefix %s", s, KeyPrefix)
	}

	cluster, node, ok := strings.Cut(rest, "-")
	if !ok {
		return Key{}, fmt.Errorf("invalid lease key %q: expected <cluster_id>-<node_id>", s)
	}

	clusterID, err := strconv.ParseUint(cluster, 10, 64)
	if err != nil {
		return Key{}, fmt.Errorf("invalid lease key %q: cluster id: %w", s, err)
	}
	nodeID, err := strconv.ParseUint(node, 10, 64)
	if err != nil {
		return Key{}, fmt.Errorf("invalid lease key %q: node id: %w", s, err)
	}
	return Key{ClusterID: clusterID, NodeID: nodeID}, nil
}

// Value is the last heartbeat received from a datanode.
type Value struct {
	// TimestampMillis is the Unix time in milliseconds the heartbeat was
	// received at.
	TimestampMillis int64  `json:"timestamp_millis"`
	NodeAddr        string `json:"node_addr"`
}

// Marshal encodes v as JSON.
func (v Value) Marshal() ([]byte, error) {
	return jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(v)
}

// ParseValue decodes a value produced by [Value.Marshal].
func ParseValue(b []byte) (Value, error) {
	var v Value
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(b, &v); err != nil {
		return Value{}, fmt.Errorf("invalid lease value: %w", err)
	}
	return v, nil
}
