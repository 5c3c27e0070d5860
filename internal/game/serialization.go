package game

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// SnapshotChecksum is a deterministic fingerprint of a snapshot.
type SnapshotChecksum struct {
	Hash      string // SHA-256 hash of the deterministic representation
	Timestamp string // When the snapshot was taken
	Version   int
}

// ComputeChecksum hashes every game field of the snapshot. The timestamp is
// excluded so two snapshots of the same state share a checksum.
func (s Snapshot) ComputeChecksum() (*SnapshotChecksum, error) {
	hash := sha256.New()
	if _, err := hash.Write([]byte(s.deterministicRepresentation())); err != nil {
		return nil, fmt.Errorf("failed to compute hash: %w", err)
	}

	return &SnapshotChecksum{
		Hash:      hex.EncodeToString(hash.Sum(nil)),
		Timestamp: s.Timestamp.Format("2006-01-02T15:04:05.000Z"),
		Version:   1,
	}, nil
}

// VerifyChecksum reports whether the snapshot still matches expected.
func (s Snapshot) VerifyChecksum(expected *SnapshotChecksum) (bool, error) {
	computed, err := s.ComputeChecksum()
	if err != nil {
		return false, fmt.Errorf("failed to compute checksum: %w", err)
	}
	return computed.Hash == expected.Hash, nil
}

func (s Snapshot) deterministicRepresentation() string {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "GAME:%s|%d|%s|%d|%t|%t\n",
		s.GameID,
		s.Round,
		s.Phase,
		s.ThrowsLeft,
		s.RoundEnded,
		s.GameOver,
	)
	for i := range s.Faces {
		fmt.Fprintf(&buf, "DIE:%d|%d|%t\n", i, s.Faces[i], s.Held[i])
	}
	for _, c := range s.Categories {
		fmt.Fprintf(&buf, "CATEGORY:%d|%t|%t|%d\n", c.Face, c.Selected, c.Locked, c.Score)
	}
	fmt.Fprintf(&buf, "TOTAL:%d|%d\n", s.TotalScore, s.BonusRemaining)
	fmt.Fprintf(&buf, "STATUS:%s\n", s.Status)

	return buf.String()
}
