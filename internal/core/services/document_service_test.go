package services

import (
	"context"
	"testing"
	"time"

	"anpere-portal/internal/config"
	"anpere-portal/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDocumentService(t *testing.T) (*testEnv, *DocumentService) {
	t.Helper()
	env := newTestEnv(t)
	svc := NewDocumentService(env.memberRepo, config.OrgConfig{
		Name:     "ANPERE",
		FullName: "Associação Nacional dos Professores Eméritos e Reformados",
		Address:  "Luanda, Angola",
	})
	return env, svc
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "ficha-0001-2026.pdf", SanitizeFilename("ficha-0001/2026.pdf"))
	assert.Equal(t, "lista_de_membros.pdf", SanitizeFilename("lista de membros.pdf"))
	assert.Equal(t, "a-b-c", SanitizeFilename(`a\b:c`))
}

func TestMemberConfirmation(t *testing.T) {
	t.Run("RendersPDF", func(t *testing.T) {
		env, svc := newTestDocumentService(t)
		m := registerN(t, env, 1)[0]

		doc, err := svc.MemberConfirmation(context.Background(), m.ID)
		require.NoError(t, err)

		assert.Equal(t, "ficha-"+SanitizeFilename(m.MemberNumber)+".pdf", doc.Filename)
		assert.NotContains(t, doc.Filename, "/")
		require.True(t, len(doc.Content) > 500)
		assert.Equal(t, "%PDF", string(doc.Content[:4]))
	})

	t.Run("RendersOptionalFieldsAsNA", func(t *testing.T) {
		env, svc := newTestDocumentService(t)

		in := validMemberInput()
		in.WorkProvince = ""
		in.DocumentIssueDate = ""
		m, err := env.memberService.Register(context.Background(), in, nil)
		require.NoError(t, err)

		doc, err := svc.MemberConfirmation(context.Background(), m.ID)
		require.NoError(t, err)
		assert.Equal(t, "%PDF", string(doc.Content[:4]))
	})

	t.Run("NotFound", func(t *testing.T) {
		_, svc := newTestDocumentService(t)

		_, err := svc.MemberConfirmation(context.Background(), 404)
		assert.ErrorIs(t, err, domain.ErrMemberNotFound)
	})

	t.Run("StorageFailureIsNotNotFound", func(t *testing.T) {
		env, svc := newTestDocumentService(t)

		sqlDB, err := env.db.DB()
		require.NoError(t, err)
		require.NoError(t, sqlDB.Close())

		_, err = svc.MemberConfirmation(context.Background(), 1)
		var sErr *domain.StorageError
		require.ErrorAs(t, err, &sErr)
		assert.NotErrorIs(t, err, domain.ErrMemberNotFound)
	})
}

func TestMemberList(t *testing.T) {
	t.Run("RendersPDFWithFixedDate", func(t *testing.T) {
		env, svc := newTestDocumentService(t)
		registerN(t, env, 5)

		svc.now = func() time.Time {
			return time.Date(2026, time.August, 29, 10, 0, 0, 0, time.UTC)
		}

		doc, err := svc.MemberList(context.Background(), memberFilterOf("", ""))
		require.NoError(t, err)

		assert.Equal(t, "membros-2026-08-29.pdf", doc.Filename)
		assert.Equal(t, "%PDF", string(doc.Content[:4]))
	})

	t.Run("ManyRowsSpanPages", func(t *testing.T) {
		env, svc := newTestDocumentService(t)
		registerN(t, env, 60)

		doc, err := svc.MemberList(context.Background(), memberFilterOf("", ""))
		require.NoError(t, err)
		assert.Equal(t, "%PDF", string(doc.Content[:4]))
	})

	t.Run("EmptyListStillRenders", func(t *testing.T) {
		_, svc := newTestDocumentService(t)

		doc, err := svc.MemberList(context.Background(), memberFilterOf("", ""))
		require.NoError(t, err)
		assert.Equal(t, "%PDF", string(doc.Content[:4]))
	})
}

func TestValueOrNA(t *testing.T) {
	assert.Equal(t, "N/A", valueOrNA(""))
	assert.Equal(t, "Huambo", valueOrNA("Huambo"))
}
