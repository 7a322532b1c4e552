package record

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func openTestHistory(t *testing.T) *History {
	t.Helper()
	h, err := OpenHistory(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { h.Close() })
	return h
}

func TestHistoryAppendAndRecent(t *testing.T) {
	h := openTestHistory(t)
	ctx := context.Background()
	now := time.Now().UTC()

	runs := []Run{
		{Prompt: "Compute the factorial of 5", Status: "pass", Function: "factorial", Details: "All 2 test cases passed", CreatedAt: now},
		{Prompt: "Train a model with tensorflow", Status: "unsupported", Details: "Unsupported library usage", CreatedAt: now},
		{Prompt: "Sort these numbers: 3 1 2", Status: "pass", Function: "sort_list", Repaired: true, CreatedAt: now},
	}
	for _, run := range runs {
		require.NoError(t, h.Append(ctx, run))
	}

	recent, err := h.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)

	// Newest first.
	require.Equal(t, "Sort these numbers: 3 1 2", recent[0].Prompt)
	require.True(t, recent[0].Repaired)
	require.Equal(t, "unsupported", recent[1].Status)
}

func TestHistoryCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "nested", "history.db")
	h, err := OpenHistory(path)
	require.NoError(t, err)
	defer h.Close()

	ctx := context.Background()
	require.NoError(t, h.Append(ctx, Run{Prompt: "p", Status: "pass", CreatedAt: time.Now().UTC()}))

	recent, err := h.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
}

func TestHistoryCountByStatus(t *testing.T) {
	h := openTestHistory(t)
	ctx := context.Background()

	for _, status := range []string{"pass", "pass", "fail", "unsupported"} {
		require.NoError(t, h.Append(ctx, Run{Prompt: "p", Status: status, CreatedAt: time.Now().UTC()}))
	}

	counts, err := h.CountByStatus(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, counts["pass"])
	require.Equal(t, 1, counts["fail"])
	require.Equal(t, 1, counts["unsupported"])
}

func TestHistoryRecentDefaultLimit(t *testing.T) {
	h := openTestHistory(t)
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		require.NoError(t, h.Append(ctx, Run{Prompt: "p", Status: "pass", CreatedAt: time.Now().UTC()}))
	}

	recent, err := h.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, recent, 20)
}
