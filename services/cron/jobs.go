package cron

import (
	"context"
	"fmt"
)

// AbandonStaleAttempts marks in-progress attempts without activity for AbandonAfter as
// abandoned. Runs hourly.
func (m *CronManager) AbandonStaleAttempts(ctx context.Context) (int64, string, error) {
	n, err := m.assessments.AbandonStale(ctx, m.opts.AbandonAfter, m.now())
	if err != nil {
		return 0, "", err
	}
	return n, fmt.Sprintf("Abandoned %d attempts idle for more than %s", n, m.opts.AbandonAfter), nil
}

// CleanupExpiredData removes blacklist rows of tokens that have expired anyway and
// career-fit snapshots older than SnapshotRetention. Runs daily at 03:00.
func (m *CronManager) CleanupExpiredData(ctx context.Context) (int64, string, error) {
	now := m.now()

	tokens, err := m.blacklist.CleanupExpiredTokens(ctx, now)
	if err != nil {
		return 0, "", fmt.Errorf("failed to clean up token blacklist: %w", err)
	}

	snapshots, err := m.fit.PurgeSnapshots(ctx, now.Add(-SnapshotRetention))
	if err != nil {
		return tokens, "", err
	}

	return tokens + snapshots, fmt.Sprintf("Deleted %d expired tokens, %d old snapshots", tokens, snapshots), nil
}
