// Package chain records simulated provenance of analysed content.
//
// No transaction is ever broadcast. The configured RPC endpoint and chain id
// are only echoed back for display.
package chain

import (
	"context"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"

	domainErrors "github.com/polkiloo/meetsum/internal/domain/errors"
	"github.com/polkiloo/meetsum/internal/domain/model"
	"github.com/polkiloo/meetsum/internal/pkg/chainsim"
)

const (
	minCredibility = 70
	maxCredibility = 95
)

// Tracker records content provenance.
type Tracker interface {
	Track(ctx context.Context, content string) (*model.Provenance, error)
}

// Network is display information about the simulated chain.
type Network struct {
	RPCURL      string
	ChainID     int
	ExplorerURL string
}

// Simulator derives provenance records from the content hash.
type Simulator struct {
	network Network
	logger  *slog.Logger
}

// NewSimulator creates a simulator bound to network.
func NewSimulator(network Network, logger *slog.Logger) *Simulator {
	network.ExplorerURL = strings.TrimRight(network.ExplorerURL, "/")
	return &Simulator{network: network, logger: logger}
}

// Network returns the configured display information.
func (s *Simulator) Network() Network {
	return s.network
}

// Track returns a provenance record for content with credibility filled in.
func (s *Simulator) Track(ctx context.Context, content string) (*model.Provenance, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	contentHash := chainsim.ContentHash(content)
	txHash := "0x" + contentHash[:40]

	score, sources := s.Verify(contentHash)
	s.logger.Debug("provenance recorded",
		slog.String("tx", txHash),
		slog.Int("chain_id", s.network.ChainID),
	)

	return &model.Provenance{
		ContentHash:      contentHash,
		TxHash:           txHash,
		ExplorerURL:      s.network.ExplorerURL + "/tx/" + txHash,
		CredibilityScore: score,
		Sources:          sources,
	}, nil
}

// Verify returns a credibility score in [70, 95] and explorer links for contentHash.
// The score is derived from the hash so the same content always scores the same.
func (s *Simulator) Verify(contentHash string) (int, []string) {
	score := minCredibility
	if raw, err := hex.DecodeString(contentHash); err == nil && len(raw) > 0 {
		score += int(raw[0]) % (maxCredibility - minCredibility + 1)
	}

	sources := []string{s.network.ExplorerURL + "/tx/0x" + prefix(contentHash, 40)}
	if len(contentHash) > 40 {
		sources = append(sources, s.network.ExplorerURL+"/address/0x"+contentHash[len(contentHash)-40:])
	}
	return score, sources
}

func prefix(s string, n int) string {
	if len(s) < n {
		return s
	}
	return s[:n]
}

// Unavailable is used when DEPLOYER_PRIVATE_KEY is not configured.
type Unavailable struct{}

func (Unavailable) Track(context.Context, string) (*model.Provenance, error) {
	return nil, fmt.Errorf("track provenance: %w", domainErrors.ErrConfigurationMissing)
}
