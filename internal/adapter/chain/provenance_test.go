package chain

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/polkiloo/meetsum/internal/config"
	domainErrors "github.com/polkiloo/meetsum/internal/domain/errors"
	"github.com/polkiloo/meetsum/internal/pkg/chainsim"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestSimulator() *Simulator {
	return NewSimulator(Network{
		RPCURL:      "https://testnet-rpc.monad.xyz/",
		ChainID:     10143,
		ExplorerURL: "https://testnet.monadexplorer.com/",
	}, testLogger())
}

func TestTrackDerivesRecordFromContent(t *testing.T) {
	sim := newTestSimulator()
	content := "Quarterly planning summary"
	hash := chainsim.ContentHash(content)

	p, err := sim.Track(context.Background(), content)
	require.NoError(t, err)
	require.Equal(t, hash, p.ContentHash)
	require.Equal(t, "0x"+hash[:40], p.TxHash)
	require.Equal(t, "https://testnet.monadexplorer.com/tx/0x"+hash[:40], p.ExplorerURL)
	require.GreaterOrEqual(t, p.CredibilityScore, 70)
	require.LessOrEqual(t, p.CredibilityScore, 95)
	require.Len(t, p.Sources, 2)
	require.True(t, strings.HasPrefix(p.Sources[1], "https://testnet.monadexplorer.com/address/0x"))

	again, err := sim.Track(context.Background(), content)
	require.NoError(t, err)
	require.Equal(t, p, again)
}

func TestVerifyScoreRange(t *testing.T) {
	sim := newTestSimulator()
	for _, content := range []string{"", "a", "b", "meeting", strings.Repeat("x", 5000)} {
		score, sources := sim.Verify(chainsim.ContentHash(content))
		require.GreaterOrEqual(t, score, minCredibility)
		require.LessOrEqual(t, score, maxCredibility)
		require.NotEmpty(t, sources)
	}

	score, sources := sim.Verify("not-hex")
	require.Equal(t, minCredibility, score)
	require.Len(t, sources, 1)
}

func TestTrackHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newTestSimulator().Track(ctx, "content")
	require.ErrorIs(t, err, context.Canceled)
}

func TestUnavailable(t *testing.T) {
	_, err := Unavailable{}.Track(context.Background(), "content")
	require.ErrorIs(t, err, domainErrors.ErrConfigurationMissing)
}

func TestNewTrackerRequiresDeployerKey(t *testing.T) {
	tracker := newTracker(trackerParams{Config: &config.Config{}, Logger: testLogger()})
	require.IsType(t, Unavailable{}, tracker)

	cfg := &config.Config{Chain: config.ChainConfig{DeployerKey: config.NewSecret("0xabc"), ChainID: 10143}}
	tracker = newTracker(trackerParams{Config: cfg, Logger: testLogger()})
	sim, ok := tracker.(*Simulator)
	require.True(t, ok)
	require.Equal(t, 10143, sim.Network().ChainID)
}
