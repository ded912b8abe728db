package usecase

import (
	"testing"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsUseCase_Upsert(t *testing.T) {
	st, audit := newStore()
	uc := NewSettingsUseCase(st.Settings(), audit)

	empty, err := uc.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty.CompanyName)

	founded := "2009-09-01"
	in := dto.SettingsRequest{
		CompanyName: "Garage Atlas", Address: "12 Bd Zerktouni, Casablanca",
		Phone: "0522112233", Email: "contact@garage-atlas.ma", FoundedOn: &founded,
	}
	_, err = uc.Save(ctx, admin, in)
	require.NoError(t, err)
	first, _ := st.Settings().Get(ctx)

	in.Manager = "H. Tazi"
	out, err := uc.Save(ctx, admin, in)
	require.NoError(t, err)
	assert.Equal(t, "H. Tazi", out.Manager)
	assert.Equal(t, "2009-09-01", out.FoundedOn)

	second, _ := st.Settings().Get(ctx)
	assert.Equal(t, first.ID, second.ID, "una sola fila")
	assert.Len(t, st.AuditEntries(), 2)

	in.Email = "contact"
	_, err = uc.Save(ctx, admin, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
