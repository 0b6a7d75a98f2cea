package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Robson2726/Facilitta-sub000/internal/domain/models"
)

func residentNames(residents []models.Resident) []string {
	names := make([]string, 0, len(residents))
	for _, r := range residents {
		names = append(names, r.Name)
	}
	return names
}

func TestSearchResidentsCaseInsensitiveOrderedCapped(t *testing.T) {
	db := newTestDB(t)
	dir, _ := newTestDirectory(db)
	for _, name := range []string{"Mariana Alves", "ANA Paula", "Bruno Costa", "Ana Souza", "Juliana Reis"} {
		seedResident(t, db, name)
	}

	found, err := dir.SearchResidents(context.Background(), "ana")
	require.NoError(t, err)
	assert.Equal(t, []string{"ANA Paula", "Ana Souza", "Juliana Reis", "Mariana Alves"}, residentNames(found))

	dir.Options.SearchLimit = 2
	capped, err := dir.SearchResidents(context.Background(), "ana")
	require.NoError(t, err)
	assert.Len(t, capped, 2)

	none, err := dir.SearchResidents(context.Background(), "zzz")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestSearchActivePortersSkipsInactiveAndAdmins(t *testing.T) {
	db := newTestDB(t)
	dir, _ := newTestDirectory(db)
	seedPorter(t, db, "jlima", "Joao Lima")
	seedPorter(t, db, "maria", "Maria Joana")
	seedUser(t, db, "joaoadm", "Joao Admin", models.AccessLevelAdmin, models.UserStatusActive)
	seedUser(t, db, "joaoold", "Joao Antigo", models.AccessLevelPorter, models.UserStatusInactive)

	found, err := dir.SearchActivePorters(context.Background(), "jo")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "Joao Lima", found[0].FullName)
	assert.Equal(t, "Maria Joana", found[1].FullName)

	byLogin, err := dir.SearchActivePorters(context.Background(), "JLIMA")
	require.NoError(t, err)
	require.Len(t, byLogin, 1)
	assert.Equal(t, "jlima", byLogin[0].Login)
}

func TestResolveOrCreateResidentReusesExisting(t *testing.T) {
	db := newTestDB(t)
	dir, _ := newTestDirectory(db)
	existing := seedResident(t, db, "Ana Souza")
	ctx := context.Background()

	id, created, err := dir.ResolveOrCreateResident(ctx, "  ana   souza ", AddressHints{})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, existing.ID, id)

	newID, created, err := dir.ResolveOrCreateResident(ctx, "Carlos Mendes", AddressHints{Block: "C", Unit: "21"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEqual(t, existing.ID, newID)

	resident, err := dir.GetResident(ctx, newID)
	require.NoError(t, err)
	assert.Equal(t, "Carlos Mendes", resident.Name)
	assert.Equal(t, placeholderAddress, resident.Street)
	assert.Equal(t, placeholderAddress, resident.Number)
	assert.Equal(t, "C", resident.Block)
	assert.Equal(t, "21", resident.Unit)

	_, _, err = dir.ResolveOrCreateResident(ctx, "   ", AddressHints{})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDirectoryFoldsAccentedNames(t *testing.T) {
	db := newTestDB(t)
	dir, _ := newTestDirectory(db)
	ctx := context.Background()
	jose := seedResident(t, db, "José Antônio")
	seedResident(t, db, "Joana Prado")

	found, err := dir.SearchResidents(ctx, "JOSÉ")
	require.NoError(t, err)
	assert.Equal(t, []string{"José Antônio"}, residentNames(found))

	id, created, err := dir.ResolveOrCreateResident(ctx, "JOSÉ ANTÔNIO", AddressHints{})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, jose.ID, id)

	suggestions, err := dir.SuggestResidents(ctx, "antô")
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, jose.ID, suggestions[0].ID)

	// renaming keeps the key in step
	_, err = dir.UpdateResident(ctx, jose.ID, ResidentInput{Name: "Élio Brandão", Street: "Rua A", Number: "10"})
	require.NoError(t, err)
	found, err = dir.SearchResidents(ctx, "ÉLIO")
	require.NoError(t, err)
	assert.Equal(t, []string{"Élio Brandão"}, residentNames(found))
	found, err = dir.SearchResidents(ctx, "josé")
	require.NoError(t, err)
	assert.Empty(t, found)

	var count int64
	require.NoError(t, db.Model(&models.Resident{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestResolveOrCreateResidentConcurrentSameName(t *testing.T) {
	db := newTestDB(t)
	dir, _ := newTestDirectory(db)

	const callers = 6
	ids := make([]uint, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id, _, err := dir.ResolveOrCreateResident(context.Background(), "Nova Moradora", AddressHints{})
			assert.NoError(t, err)
			ids[i] = id
		}(i)
	}
	wg.Wait()

	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}
	var count int64
	require.NoError(t, db.Model(&models.Resident{}).Where("name = ?", "Nova Moradora").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestResolveActivePorter(t *testing.T) {
	db := newTestDB(t)
	dir, _ := newTestDirectory(db)
	porter := seedPorter(t, db, "jlima", "Joao Lima")
	inactive := seedUser(t, db, "old", "Old Porter", models.AccessLevelPorter, models.UserStatusInactive)
	ctx := context.Background()

	byID, err := dir.ResolveActivePorter(ctx, porter.ID, "")
	require.NoError(t, err)
	assert.Equal(t, porter.ID, byID.ID)

	byName, err := dir.ResolveActivePorter(ctx, 0, "joao lima")
	require.NoError(t, err)
	assert.Equal(t, porter.ID, byName.ID)

	byLogin, err := dir.ResolveActivePorter(ctx, 0, "JLIMA")
	require.NoError(t, err)
	assert.Equal(t, porter.ID, byLogin.ID)

	_, err = dir.ResolveActivePorter(ctx, inactive.ID, "")
	assert.ErrorIs(t, err, ErrReference)

	_, err = dir.ResolveActivePorter(ctx, 0, "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSuggestResidentsRankedByPackageCount(t *testing.T) {
	db := newTestDB(t)
	dir, _ := newTestDirectory(db)
	store := NewPackageService(db, zap.NewNop())
	porter := seedPorter(t, db, "jlima", "Joao Lima")

	ana := seedResident(t, db, "Ana Souza")
	mariana := seedResident(t, db, "Mariana Alves")
	juliana := seedResident(t, db, "Juliana Reis")
	seedResident(t, db, "Bruno Costa")

	for i := 0; i < 3; i++ {
		seedPackage(t, store, mariana.ID, porter.ID)
	}
	seedPackage(t, store, ana.ID, porter.ID)

	suggestions, err := dir.SuggestResidents(context.Background(), "ana")
	require.NoError(t, err)
	require.Len(t, suggestions, 3)
	assert.Equal(t, mariana.ID, suggestions[0].ID)
	assert.Equal(t, int64(3), suggestions[0].PackageCount)
	assert.Equal(t, ana.ID, suggestions[1].ID)
	assert.Equal(t, juliana.ID, suggestions[2].ID)
	assert.Equal(t, int64(0), suggestions[2].PackageCount)

	dir.Options.SuggestionLimit = 1
	top, err := dir.SuggestResidents(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, mariana.ID, top[0].ID)
}

func TestListResidentsCacheInvalidatedOnWrite(t *testing.T) {
	db := newTestDB(t)
	dir, store := newTestDirectory(db)
	ctx := context.Background()
	seedResident(t, db, "Bruno Costa")

	first, err := dir.ListResidents(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Bruno Costa"}, residentNames(first))
	assert.Equal(t, 1, store.Len())

	// rows written behind the directory's back stay invisible until the cache drops
	seedResident(t, db, "Ana Souza")
	cached, err := dir.ListResidents(ctx)
	require.NoError(t, err)
	assert.Len(t, cached, 1)

	_, err = dir.CreateResident(ctx, ResidentInput{Name: "Carla Dias", Street: "Rua B", Number: "5"})
	require.NoError(t, err)
	assert.Equal(t, 0, store.Len())

	fresh, err := dir.ListResidents(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ana Souza", "Bruno Costa", "Carla Dias"}, residentNames(fresh))

	_, _, err = dir.ResolveOrCreateResident(ctx, "Diego Rocha", AddressHints{})
	require.NoError(t, err)
	afterProvision, err := dir.ListResidents(ctx)
	require.NoError(t, err)
	assert.Len(t, afterProvision, 4)
}

func TestResidentMaintenance(t *testing.T) {
	db := newTestDB(t)
	dir, _ := newTestDirectory(db)
	store := NewPackageService(db, zap.NewNop())
	porter := seedPorter(t, db, "jlima", "Joao Lima")
	ctx := context.Background()

	_, err := dir.CreateResident(ctx, ResidentInput{Name: "Sem Endereco"})
	assert.ErrorIs(t, err, ErrValidation)

	resident, err := dir.CreateResident(ctx, ResidentInput{Name: " Ana  Souza ", Street: "Rua A", Number: "10", Unit: "12"})
	require.NoError(t, err)
	assert.Equal(t, "Ana Souza", resident.Name)

	updated, err := dir.UpdateResident(ctx, resident.ID, ResidentInput{Name: "Ana S. Souza", Street: "Rua A", Number: "10", Unit: "14"})
	require.NoError(t, err)
	assert.Equal(t, "14", updated.Unit)

	_, err = dir.UpdateResident(ctx, 9999, ResidentInput{Name: "X", Street: "Y", Number: "1"})
	assert.ErrorIs(t, err, ErrNotFound)

	seedPackage(t, store, resident.ID, porter.ID)
	assert.ErrorIs(t, dir.DeleteResident(ctx, resident.ID), ErrResidentInUse)

	spare := seedResident(t, db, "Bruno Costa")
	require.NoError(t, dir.DeleteResident(ctx, spare.ID))
	_, err = dir.GetResident(ctx, spare.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, dir.DeleteResident(ctx, spare.ID), ErrNotFound)
}

func TestSearchResidentsManyRows(t *testing.T) {
	db := newTestDB(t)
	dir, _ := newTestDirectory(db)
	for i := 0; i < 25; i++ {
		seedResident(t, db, fmt.Sprintf("Morador %02d", i))
	}

	found, err := dir.SearchResidents(context.Background(), "morador")
	require.NoError(t, err)
	require.Len(t, found, 10)
	assert.Equal(t, "Morador 00", found[0].Name)
	assert.Equal(t, "Morador 09", found[9].Name)
}
