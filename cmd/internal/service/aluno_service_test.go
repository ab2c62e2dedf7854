package service

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"secretaria/cmd/internal/contract"
	"secretaria/cmd/internal/domain/database/repository"
	"secretaria/cmd/internal/domain/entity"
	"secretaria/cmd/internal/utils/apierror"
)

// photoHeader builds the *multipart.FileHeader a real upload would produce.
func photoHeader(t *testing.T, filename string, data []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("foto", filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(int64(body.Len()) + 1024)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["foto"][0]
}

func setupAlunos(t *testing.T) (*DefaultAlunoService, *repository.DefaultAlunoRepository, *fakeStorage) {
	db := setupDB(t)
	turma := &entity.Turma{ID: 7, UnidadeID: 1, Nome: "Turma Quarta", DiaSemana: 3}
	require.NoError(t, db.Create(turma).Error)

	repo := repository.NewAlunoRepository(db)
	require.NoError(t, repo.Save(&entity.Aluno{ID: 1, UnidadeID: 1, TurmaID: &turma.ID, Nome: "Ana", Ativo: true, CreatedAt: 1, UpdatedAt: 1}))
	require.NoError(t, repo.Save(&entity.Aluno{ID: 2, UnidadeID: 1, Nome: "Bruno", Ativo: true, FotoKey: "alunos/2/old.png", CreatedAt: 1, UpdatedAt: 5}))
	require.NoError(t, repo.Save(&entity.Aluno{ID: 3, UnidadeID: 2, Nome: "Carla", Ativo: true, CreatedAt: 1, UpdatedAt: 1}))

	s3 := newFakeStorage()
	s3.objects["alunos/2/old.png"] = []byte("old")
	return NewAlunoService(repo, s3), repo, s3
}

func TestAlunoList(t *testing.T) {
	svc, _, _ := setupAlunos(t)
	actor := actorWith(0)

	all, err := svc.List(actor, &contract.AlunoQuery{})
	require.Nil(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Ana", all[0].Nome)
	assert.Equal(t, "Turma Quarta", all[0].TurmaNome)
	assert.Nil(t, all[0].FotoURL)
	require.NotNil(t, all[1].FotoURL)
	assert.Equal(t, "https://bucket.test/alunos/2/old.png?v=5", *all[1].FotoURL)

	byTurma, err := svc.List(actor, &contract.AlunoQuery{TurmaID: 7})
	require.Nil(t, err)
	require.Len(t, byTurma, 1)
	assert.Equal(t, int64(1), byTurma[0].ID)

	_, err = svc.Get(actor, 3)
	assert.Equal(t, apierror.NotFoundError, err)
}

func TestUploadPhoto_ReplacesOldObject(t *testing.T) {
	svc, repo, s3 := setupAlunos(t)
	actor := actorWith(entity.PermissionManageAlunos)

	resp, err := svc.UploadPhoto(actor, 2, photoHeader(t, "Foto.JPG", []byte("new image")))
	require.Nil(t, err)
	require.NotNil(t, resp.FotoURL)
	assert.True(t, strings.HasPrefix(*resp.FotoURL, "https://bucket.test/alunos/2/"))
	assert.True(t, strings.HasSuffix(*resp.FotoURL, ".jpg?v=1741791600000"))

	stored, _ := repo.FindByID(2)
	assert.NotEqual(t, "alunos/2/old.png", stored.FotoKey)
	assert.Equal(t, []byte("new image"), s3.objects[stored.FotoKey])
	assert.Equal(t, []string{"alunos/2/old.png"}, s3.deleted)
	assert.NotContains(t, s3.objects, "alunos/2/old.png")
}

func TestUploadPhoto_Rejects(t *testing.T) {
	svc, repo, s3 := setupAlunos(t)
	actor := actorWith(entity.PermissionManageAlunos)

	tests := []struct {
		name     string
		header   *multipart.FileHeader
		wantCode int
	}{
		{"missing file", nil, http.StatusBadRequest},
		{"wrong extension", photoHeader(t, "foto.gif", []byte("gif")), http.StatusBadRequest},
		{"no extension", photoHeader(t, "foto", []byte("raw")), http.StatusBadRequest},
		{"too large", photoHeader(t, "foto.png", bytes.Repeat([]byte{1}, contract.MaxPhotoSizeBytes+1)), http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UploadPhoto(actor, 1, tt.header)
			require.NotNil(t, err)
			assert.Equal(t, tt.wantCode, err.Code())
		})
	}

	stored, _ := repo.FindByID(1)
	assert.Empty(t, stored.FotoKey)
	assert.Len(t, s3.objects, 1)

	_, err := svc.UploadPhoto(actorWith(0), 1, photoHeader(t, "foto.png", []byte("png")))
	require.NotNil(t, err)
	assert.Equal(t, http.StatusForbidden, err.Code())
}

func TestDeletePhoto(t *testing.T) {
	svc, repo, s3 := setupAlunos(t)
	actor := actorWith(entity.PermissionManageAlunos)

	require.Nil(t, svc.DeletePhoto(actor, 2))
	stored, _ := repo.FindByID(2)
	assert.Empty(t, stored.FotoKey)
	assert.Empty(t, s3.objects)

	assert.Equal(t, apierror.NoPhotoError, svc.DeletePhoto(actor, 2))
}

func TestPhoto_StorageDisabled(t *testing.T) {
	_, repo, _ := setupAlunos(t)
	svc := NewAlunoService(repo, nil)

	_, err := svc.UploadPhoto(actorWith(entity.PermissionManageAlunos), 1, photoHeader(t, "foto.png", []byte("png")))
	assert.Equal(t, apierror.StorageDisabledError, err)

	resp, err := svc.Get(actorWith(0), 2)
	require.Nil(t, err)
	assert.Nil(t, resp.FotoURL)
}
