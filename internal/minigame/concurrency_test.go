package minigame

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/ActionEngine_Go/internal/domain"
)

func TestResolveAction_ConcurrentSamePlayer(t *testing.T) {
	f := newFixture(t)
	givePickaxe(f.repo, 100)

	const attempts = 8
	var (
		wg   sync.WaitGroup
		errs = make([]error, attempts)
	)
	start := make(chan struct{})
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, errs[i] = f.svc.ResolveAction(context.Background(), mineRequest())
		}(i)
	}
	close(start)
	wg.Wait()

	var ok, cooling int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case assert.ErrorIs(t, err, domain.ErrOnCooldown):
			cooling++
		}
	}
	assert.Equal(t, 1, ok, "exactly one action wins the race")
	assert.Equal(t, attempts-1, cooling)

	pickaxe := f.repo.Inventory(testUser, testGuild, itemPickaxe)
	require.NotNil(t, pickaxe)
	assert.Equal(t, 95, *pickaxe.State.Instances[0].Durability, "durability is applied once")
	assert.Equal(t, 1, f.repo.Inventory(testUser, testGuild, itemOre).Quantity)
	assert.Len(t, f.repo.ActionRuns(), 1)
}

func TestResolveAction_ConcurrentDifferentPlayers(t *testing.T) {
	f := newFixture(t)
	users := []string{"user-a", "user-b", "user-c"}

	var wg sync.WaitGroup
	errs := make([]error, len(users))
	for i, u := range users {
		wg.Add(1)
		go func(i int, u string) {
			defer wg.Done()
			_, errs[i] = f.svc.ResolveAction(context.Background(), ActionRequest{UserID: u, GuildID: testGuild, AreaKey: "lagoon", Level: 1})
		}(i, u)
	}
	wg.Wait()

	for i, u := range users {
		require.NoError(t, errs[i])
		assert.Equal(t, int64(100), f.repo.Coins(u, testGuild))
	}
}
