package paramex

import (
	"errors"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_FirstRegistrationWins(t *testing.T) {
	reg := NewCategoryRegistry()
	order := NewType("OrderError")

	require.NoError(t, reg.CheckAndRegister(10, order))

	typ, ok := reg.RegisteredType(10)
	require.True(t, ok)
	assert.Same(t, order, typ)
}

func TestRegistry_Idempotent(t *testing.T) {
	reg := NewCategoryRegistry()
	order := NewType("OrderError")

	require.NoError(t, reg.CheckAndRegister(10, order))
	require.NoError(t, reg.CheckAndRegister(10, order))

	typ, _ := reg.RegisteredType(10)
	assert.Same(t, order, typ)
}

func TestRegistry_UnrelatedTypeConflicts(t *testing.T) {
	reg := NewCategoryRegistry()
	order := NewType("OrderError")
	payment := NewType("PaymentError")

	require.NoError(t, reg.CheckAndRegister(10, order))

	err := reg.CheckAndRegister(10, payment)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCategoryConflict)

	var conflict *CategoryConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, 10, conflict.Category)
	assert.Same(t, order, conflict.Registered)
	assert.Same(t, payment, conflict.Attempted)
	assert.Contains(t, err.Error(), "OrderError")

	// The conflict must leave the entry untouched.
	typ, _ := reg.RegisteredType(10)
	assert.Same(t, order, typ)
}

func TestRegistry_FamilyConvergesToMostGeneralType(t *testing.T) {
	order := NewType("OrderError")
	timeout := order.Derive("OrderTimeoutError")
	network := timeout.Derive("OrderNetworkTimeoutError")

	// The final entry must be the most general type regardless of
	// registration order.
	orders := [][]*Type{
		{order, timeout, network},
		{network, timeout, order},
		{timeout, order, network},
		{network, order, timeout},
	}
	for _, seq := range orders {
		reg := NewCategoryRegistry()
		for _, typ := range seq {
			require.NoError(t, reg.CheckAndRegister(10, typ))
		}
		typ, ok := reg.RegisteredType(10)
		require.True(t, ok)
		assert.Same(t, order, typ, "sequence %v", seq)
	}
}

func TestRegistry_SiblingSubtypesShareCategory(t *testing.T) {
	order := NewType("OrderError")
	timeout := order.Derive("OrderTimeoutError")
	rejected := order.Derive("OrderRejectedError")

	// Siblings are unrelated to each other, so the shared category only works
	// once the entry has converged to the common supertype.
	reg := NewCategoryRegistry()
	require.NoError(t, reg.CheckAndRegister(10, timeout))
	require.NoError(t, reg.CheckAndRegister(10, order))
	require.NoError(t, reg.CheckAndRegister(10, rejected))

	typ, _ := reg.RegisteredType(10)
	assert.Same(t, order, typ)

	// Without the supertype in between, siblings conflict.
	reg = NewCategoryRegistry()
	require.NoError(t, reg.CheckAndRegister(10, timeout))
	assert.ErrorIs(t, reg.CheckAndRegister(10, rejected), ErrCategoryConflict)
}

func TestRegistry_NilType(t *testing.T) {
	reg := NewCategoryRegistry()

	err := reg.CheckAndRegister(10, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPrecondition)

	var pre *PreconditionError
	require.ErrorAs(t, err, &pre)
	assert.Equal(t, "exceptionType", pre.Arg)
}

func TestRegistry_Categories(t *testing.T) {
	reg := NewCategoryRegistry()
	require.NoError(t, reg.CheckAndRegister(30, NewType("C")))
	require.NoError(t, reg.CheckAndRegister(10, NewType("A")))
	require.NoError(t, reg.CheckAndRegister(20, NewType("B")))

	assert.Equal(t, []int{10, 20, 30}, reg.Categories())
}

func TestRegistry_FrameworkCategoryRange(t *testing.T) {
	assert.True(t, IsFrameworkCategory(0))
	assert.True(t, IsFrameworkCategory(FrameworkCategoryMax))
	assert.False(t, IsFrameworkCategory(FrameworkCategoryMax+1))
	assert.False(t, IsFrameworkCategory(-1))
}

func TestRegistry_ConcurrentFamilyRegistrations(t *testing.T) {
	const goroutines = 8
	const categories = 5

	reg := NewCategoryRegistry()
	families := make([][]*Type, categories)
	for c := range families {
		base := NewType("Base")
		sub := base.Derive("Sub")
		leaf := sub.Derive("Leaf")
		families[c] = []*Type{base, sub, leaf}
	}

	var wg sync.WaitGroup
	errCh := make(chan error, goroutines*(50+categories))
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for round := 0; round < 50; round++ {
				c := rng.Intn(categories)
				typ := families[c][rng.Intn(3)]
				if err := reg.CheckAndRegister(c, typ); err != nil {
					errCh <- err
				}
			}
			// Every goroutine also registers every base type so the final
			// entry for each category is deterministic.
			for c := 0; c < categories; c++ {
				if err := reg.CheckAndRegister(c, families[c][0]); err != nil {
					errCh <- err
				}
			}
		}(int64(g))
	}
	wg.Wait()
	close(errCh)

	for err := range errCh {
		t.Errorf("related registration failed: %v", err)
	}
	for c := 0; c < categories; c++ {
		typ, ok := reg.RegisteredType(c)
		require.True(t, ok)
		assert.Same(t, families[c][0], typ, "category %d", c)
	}
}

func TestRegistry_ConcurrentUnrelatedRace(t *testing.T) {
	const goroutines = 8
	const categories = 5

	reg := NewCategoryRegistry()
	rivals := make([][2]*Type, categories)
	for c := range rivals {
		rivals[c] = [2]*Type{NewType("Left"), NewType("Right")}
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	var failures []error
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for round := 0; round < 100; round++ {
				c := rng.Intn(categories)
				typ := rivals[c][rng.Intn(2)]
				if err := reg.CheckAndRegister(c, typ); err != nil {
					mu.Lock()
					failures = append(failures, err)
					mu.Unlock()
				}
			}
		}(int64(g))
	}
	wg.Wait()

	// Whichever rival won a category keeps it; every failure must be a
	// conflict, never a corrupted entry or a panic.
	for _, err := range failures {
		assert.ErrorIs(t, err, ErrCategoryConflict)
	}
	for c := 0; c < categories; c++ {
		typ, ok := reg.RegisteredType(c)
		require.True(t, ok, "category %d", c)
		if typ != rivals[c][0] && typ != rivals[c][1] {
			t.Errorf("category %d held by foreign type %v", c, typ)
		}
	}
}

func TestRegistry_ConflictErrorIsTerminal(t *testing.T) {
	reg := NewCategoryRegistry()
	order := NewType("OrderError")
	payment := NewType("PaymentError")

	require.NoError(t, reg.CheckAndRegister(10, order))

	// Retrying the losing type keeps failing; retrying the owner keeps
	// succeeding.
	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, reg.CheckAndRegister(10, payment), ErrCategoryConflict)
		assert.NoError(t, reg.CheckAndRegister(10, order))
	}

	if !errors.Is(reg.CheckAndRegister(10, payment), ErrCategoryConflict) {
		t.Fatal("conflict must persist")
	}
}
