package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/workova-backend/internal/models"
)

func TestSeedDemoData(t *testing.T) {
	store := newTestStore(t)
	auth := NewAuthService(store)
	jobs := NewJobService(store)
	offers := NewOfferService(store)
	chats := NewChatService(store, nil, false)
	seed := NewSeedService(store)
	ctx := context.Background()

	require.NoError(t, seed.SeedDemoData(ctx))
	// Повторный посев не плодит дубликатов.
	require.NoError(t, seed.SeedDemoData(ctx))

	demo, err := auth.FindByEmail(ctx, "demo@workova.app")
	require.NoError(t, err)
	assert.Equal(t, "demo-user-1", demo.ID)
	assert.Equal(t, models.RoleBoth, demo.Role)

	faucet, err := jobs.Get(ctx, "demo-job-1")
	require.NoError(t, err)
	assert.Equal(t, "Fix leaky kitchen faucet", faucet.Title)
	assert.Equal(t, 50.0, faucet.BudgetMin)
	assert.Equal(t, 120.0, faucet.BudgetMax)
	assert.Equal(t, models.JobStatusOpen, faucet.Status)

	faucetOffers, err := offers.ForJob(ctx, "demo-job-1")
	require.NoError(t, err)
	require.Len(t, faucetOffers, 2)
	prices := []float64{faucetOffers[0].Price, faucetOffers[1].Price}
	assert.ElementsMatch(t, []float64{75, 95}, prices)

	counts, err := jobs.OfferCounts(ctx, []string{"demo-job-1"})
	require.NoError(t, err)
	assert.Equal(t, 2, counts["demo-job-1"])

	demoChats, err := chats.ForUser(ctx, "demo-user-1")
	require.NoError(t, err)
	require.Len(t, demoChats, 1)
	assert.Equal(t, "demo-chat-1", demoChats[0].ID)

	messages, err := chats.Messages(ctx, "demo-chat-1", "demo-worker-1")
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, demoChats[0].LastMessage, messages[0].Text)
}

func TestSeededScenarioAcceptCascade(t *testing.T) {
	store := newTestStore(t)
	jobs := NewJobService(store)
	offers := NewOfferService(store)
	seed := NewSeedService(store)
	ctx := context.Background()

	require.NoError(t, seed.SeedDemoData(ctx))

	result, err := offers.Accept(ctx, "demo-offer-1", "demo-user-1")
	require.NoError(t, err)
	assert.Equal(t, models.OfferStatusAccepted, result.Offer.Status)

	other, err := offers.Get(ctx, "demo-offer-2")
	require.NoError(t, err)
	assert.Equal(t, models.OfferStatusRejected, other.Status)

	job, err := jobs.Get(ctx, "demo-job-1")
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusBooked, job.Status)

	// Чат пары уже существовал в демо-данных и переиспользован.
	assert.Equal(t, "demo-chat-1", result.Chat.ID)
}
