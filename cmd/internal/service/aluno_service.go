package service

import (
	"context"
	"io"
	"mime/multipart"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/gommon/log"

	"secretaria/cmd/internal/contract"
	"secretaria/cmd/internal/domain/entity"
	"secretaria/cmd/internal/domain/policy"
	"secretaria/cmd/internal/infrastructure/aws/storage"
	"secretaria/cmd/internal/utils"
	"secretaria/cmd/internal/utils/apierror"
)

type DefaultAlunoService struct {
	AlunoRepo AlunoRepository
	Storage   storage.S3Client
}

func NewAlunoService(repo AlunoRepository, s3 storage.S3Client) *DefaultAlunoService {
	return &DefaultAlunoService{
		AlunoRepo: repo,
		Storage:   s3,
	}
}

func (a *DefaultAlunoService) List(actor *entity.User, q *contract.AlunoQuery) ([]*contract.AlunoResponse, apierror.ErrorResponse) {
	if actor == nil {
		return nil, apierror.UnauthorizedError
	}

	var turmaID *int64
	if q.TurmaID > 0 {
		turmaID = &q.TurmaID
	}

	alunos, err := a.AlunoRepo.FindAllByUnidade(actor.UnidadeID, turmaID)
	if err != nil {
		log.Errorf("failed to fetch alunos: %v", err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*contract.AlunoResponse, len(alunos))
	for i, aluno := range alunos {
		resp[i] = toAlunoResponse(aluno, a.publicURL())
	}
	return resp, nil
}

func (a *DefaultAlunoService) Get(actor *entity.User, id int64) (*contract.AlunoResponse, apierror.ErrorResponse) {
	aluno, apierr := a.find(actor, id)
	if apierr != nil {
		return nil, apierr
	}
	return toAlunoResponse(aluno, a.publicURL()), nil
}

// UploadPhoto stores a new photo and then removes the one it replaces.
// A failure removing the old object is only logged.
func (a *DefaultAlunoService) UploadPhoto(actor *entity.User, id int64, fileHeader *multipart.FileHeader) (*contract.AlunoResponse, apierror.ErrorResponse) {
	if err := policy.Require(actor, entity.PermissionManageAlunos); err != nil {
		return nil, err
	}

	if a.Storage == nil {
		return nil, apierror.StorageDisabledError
	}

	if apierr := checkPhotoFile(fileHeader); apierr != nil {
		return nil, apierr
	}

	aluno, apierr := a.find(actor, id)
	if apierr != nil {
		return nil, apierr
	}

	data, apierr := readPhotoFile(fileHeader)
	if apierr != nil {
		return nil, apierr
	}

	ext, _ := utils.CheckFileExt(fileHeader.Filename, contract.ValidPhotoFileTypes)
	key := storage.AlunoPhotoKey(aluno.ID, uuid.NewString(), ext)

	ctx := context.Background()
	if err := a.Storage.UploadFile(ctx, data, key); err != nil {
		log.Errorf("failed to upload photo of aluno %d: %v", aluno.ID, err)
		return nil, apierror.InternalServerError
	}

	oldKey := aluno.FotoKey
	aluno.FotoKey = key
	aluno.UpdatedAt = utils.NowUTC()
	if err := a.AlunoRepo.Save(aluno); err != nil {
		log.Errorf("failed to save photo of aluno %d: %v", aluno.ID, err)
		a.deleteObject(ctx, key)
		return nil, apierror.InternalServerError
	}

	if oldKey != "" {
		a.deleteObject(ctx, oldKey)
	}
	return toAlunoResponse(aluno, a.publicURL()), nil
}

func (a *DefaultAlunoService) DeletePhoto(actor *entity.User, id int64) apierror.ErrorResponse {
	if err := policy.Require(actor, entity.PermissionManageAlunos); err != nil {
		return err
	}

	if a.Storage == nil {
		return apierror.StorageDisabledError
	}

	aluno, apierr := a.find(actor, id)
	if apierr != nil {
		return apierr
	}

	if aluno.FotoKey == "" {
		return apierror.NoPhotoError
	}

	if err := a.Storage.DeleteFile(context.Background(), aluno.FotoKey); err != nil {
		log.Errorf("failed to delete photo of aluno %d: %v", aluno.ID, err)
		return apierror.InternalServerError
	}

	aluno.FotoKey = ""
	aluno.UpdatedAt = utils.NowUTC()
	if err := a.AlunoRepo.Save(aluno); err != nil {
		log.Errorf("failed to clear photo of aluno %d: %v", aluno.ID, err)
		return apierror.InternalServerError
	}
	return nil
}

func (a *DefaultAlunoService) find(actor *entity.User, id int64) (*entity.Aluno, apierror.ErrorResponse) {
	if actor == nil {
		return nil, apierror.UnauthorizedError
	}

	aluno, err := a.AlunoRepo.FindByID(id)
	if err != nil {
		log.Errorf("failed to fetch aluno %d: %v", id, err)
		return nil, apierror.InternalServerError
	}

	if aluno == nil {
		return nil, apierror.NotFoundError
	}

	if apierr := policy.SameUnidade(actor, aluno.UnidadeID); apierr != nil {
		return nil, apierr
	}
	return aluno, nil
}

func (a *DefaultAlunoService) publicURL() func(string) string {
	if a.Storage == nil {
		return nil
	}
	return a.Storage.PublicURL
}

func (a *DefaultAlunoService) deleteObject(ctx context.Context, key string) {
	if err := a.Storage.DeleteFile(ctx, key); err != nil {
		log.Warnf("failed to delete photo object %s: %v", key, err)
	}
}

func checkPhotoFile(fileHeader *multipart.FileHeader) apierror.ErrorResponse {
	if fileHeader == nil {
		return apierror.MissingPhotoFileError
	}

	if fileHeader.Size > contract.MaxPhotoSizeBytes {
		return apierror.NewPhotoTooLargeError(contract.MaxPhotoSizeBytes)
	}

	if strings.TrimSpace(fileHeader.Filename) == "" {
		return apierror.MissingFileNameError
	}

	if ext, ok := utils.CheckFileExt(fileHeader.Filename, contract.ValidPhotoFileTypes); !ok {
		return apierror.NewInvalidFileExtError(ext)
	}
	return nil
}

func readPhotoFile(fileHeader *multipart.FileHeader) ([]byte, apierror.ErrorResponse) {
	file, err := fileHeader.Open()
	if err != nil {
		log.Errorf("failed to open file: %v", err)
		return nil, apierror.InternalServerError
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, contract.MaxPhotoSizeBytes+1))
	if err != nil {
		log.Errorf("failed to read file: %v", err)
		return nil, apierror.InternalServerError
	}

	if len(data) > contract.MaxPhotoSizeBytes {
		return nil, apierror.NewPhotoTooLargeError(contract.MaxPhotoSizeBytes)
	}
	return data, nil
}
