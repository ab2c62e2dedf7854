package apierror

import (
	"errors"
	"fmt"
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
)

// ErrorResponse abstracts all API error responses to the user.
//
// This interface does not implement `error`, since its only purpose
// is to be used for API responses and not for logging circumstances.
//
// In general, the whole ErrorResponse can be sent for serialization.
type ErrorResponse interface {
	// Code is the HTTP status code to be returned.
	Code() int
}

type APIError struct {
	Message string `json:"message"`
	Status  int    `json:"-"`
}

func (a *APIError) Code() int {
	return a.Status
}

type StructuredError struct {
	Errors map[string][]string `json:"errors"`
	Status int                 `json:"-"`
}

func (s *StructuredError) Code() int {
	return s.Status
}

var (
	MalformedBodyError    = NewSimple(http.StatusBadRequest, "Corpo da requisição malformado")
	InternalServerError   = NewSimple(http.StatusInternalServerError, "Erro interno do servidor")
	NotFoundError         = NewSimple(http.StatusNotFound, "Recurso não encontrado")
	UnauthorizedError     = NewSimple(http.StatusUnauthorized, "Não autenticado")
	InvalidAuthTokenError = NewSimple(http.StatusUnauthorized, "Token de acesso inválido ou expirado")
	UserNotFoundError     = NewSimple(http.StatusUnauthorized, "Usuário não encontrado")
	MissingAccessError    = NewSimple(http.StatusForbidden, "Acesso desativado")
	MissingPhotoFileError = NewSimple(http.StatusBadRequest, "O arquivo 'foto' é obrigatório")
	MissingFileNameError  = NewSimple(http.StatusBadRequest, "O arquivo enviado não possui nome")
	NoPhotoError          = NewSimple(http.StatusNotFound, "O aluno não possui foto")
	StorageDisabledError  = NewSimple(http.StatusServiceUnavailable, "Armazenamento de fotos não configurado")

	/*
	 * Kanban board
	 */
	CardFinalizedError         = NewSimple(http.StatusConflict, "Este alerta já foi finalizado e não pode ser movido")
	RetentionDateRequiredError = NewSimple(http.StatusUnprocessableEntity, "É necessário preencher a data de retenção antes de mover para Retenção agendada")
	CardAlreadyFinalizedError  = NewSimple(http.StatusConflict, "Este alerta já foi finalizado")
	UnknownColumnError         = NewSimple(http.StatusBadRequest, "Coluna desconhecida")
	CardUpdateError            = NewSimple(http.StatusInternalServerError, "Erro ao atualizar card")
	InvalidResultadoError      = NewSimple(http.StatusBadRequest, "Resultado inválido: use 'evadiu' ou 'retido'")
	InvalidBoardModeError      = NewSimple(http.StatusBadRequest, "Modo inválido: use 'ativo' ou 'hibernando'")

	/*
	 * Collected material queue
	 */
	CorrectionAlreadyStartedError = NewSimple(http.StatusConflict, "A correção desta apostila já foi iniciada")
	CorrectionNotStartedError     = NewSimple(http.StatusConflict, "A correção desta apostila não foi iniciada")
	NoCorrectionsError            = NewSimple(http.StatusConflict, "Esta apostila não possui correções para desfazer")
	AlreadyDeliveredError         = NewSimple(http.StatusConflict, "Esta apostila já foi entregue")
	NotDeliveredError             = NewSimple(http.StatusConflict, "Esta apostila ainda não foi entregue")
	CorrectionInProgressError     = NewSimple(http.StatusConflict, "A correção desta apostila ainda está em andamento")

	/*
	 * Makeup classes
	 */
	MakeupDateInPastError    = NewSimple(http.StatusUnprocessableEntity, "A data da reposição não pode estar no passado")
	MakeupWeekdayMismatchErr = NewSimple(http.StatusUnprocessableEntity, "A data da reposição não corresponde ao dia da turma escolhida")
)

// translator is set once at startup, when the validator translations are registered.
var translator ut.Translator

func SetTranslator(t ut.Translator) {
	translator = t
}

func FromValidationError(err error) *StructuredError {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil
	}

	problems := map[string][]string{}
	for _, fe := range ve {
		field := fe.Field()
		problems[field] = append(problems[field], describe(fe))
	}

	return &StructuredError{
		Errors: problems,
		Status: http.StatusBadRequest,
	}
}

func describe(fe validator.FieldError) string {
	if translator != nil {
		return fe.Translate(translator)
	}

	switch fe.Tag() {
	case "required":
		return "Este campo é obrigatório"
	case "min":
		return "Valor muito curto, mínimo: " + fe.Param()
	case "max":
		return "Valor muito longo, máximo: " + fe.Param()
	case "oneof":
		return "Valor deve ser um de: " + fe.Param()
	default:
		return "Valor inválido"
	}
}

func NewSimple(status int, msg string, args ...any) *APIError {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	return &APIError{Status: status, Message: msg}
}

func NewInvalidParamTypeError(name, dataType string) *APIError {
	return NewSimple(http.StatusBadRequest, "O parâmetro '%s' possui tipo inválido, esperado: %s", name, dataType)
}

func NewMissingParamError(name string) *APIError {
	return NewSimple(http.StatusBadRequest, "O parâmetro '%s' é obrigatório", name)
}

func NewPermissionError(perm int64) *APIError {
	return NewSimple(http.StatusForbidden, "Permissão ausente: %d", perm)
}

func NewPhotoTooLargeError(max int64) *APIError {
	return NewSimple(http.StatusRequestEntityTooLarge, "A foto excede o tamanho máximo de %d bytes", max)
}

func NewInvalidFileExtError(ext string) *APIError {
	if ext == "" {
		return NewSimple(http.StatusBadRequest, "O arquivo enviado não possui extensão")
	}
	return NewSimple(http.StatusBadRequest, "Extensão de arquivo não suportada: %s", ext)
}
