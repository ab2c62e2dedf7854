package service

import (
	"fmt"
	"time"

	"secretaria/cmd/internal/contract"
	"secretaria/cmd/internal/domain/entity"
	"secretaria/cmd/internal/listing"
	"secretaria/cmd/internal/utils"
)

func toCardResponse(card *entity.KanbanCard) *contract.CardResponse {
	tags := []string(card.Tags)
	if tags == nil {
		tags = []string{}
	}

	resp := &contract.CardResponse{
		ID:                  card.ID,
		AlunoID:             card.AlunoID,
		AlunoNome:           card.AlunoNome,
		Titulo:              card.Titulo,
		Descricao:           card.Descricao,
		Tags:                tags,
		ColumnID:            string(card.ColumnID),
		Variant:             string(card.Variant()),
		Responsavel:         card.Responsavel,
		DataRetencao:        card.DataRetencao,
		MotivoAlerta:        card.MotivoAlerta,
		MotivoEvasao:        card.MotivoEvasao,
		DataEvasao:          card.DataEvasao,
		AcordoRetencao:      card.AcordoRetencao,
		ObservacoesRetencao: card.ObservacoesRetencao,
		AlertaID:            card.AlertaID,
		CreatedAt:           utils.FormatEpoch(card.CreatedAt),
		UpdatedAt:           utils.FormatEpoch(card.UpdatedAt),
	}

	if card.Resultado != nil {
		res := string(*card.Resultado)
		resp.Resultado = &res
	}

	if card.FinalizadoEm > 0 {
		ts := utils.FormatEpoch(card.FinalizadoEm)
		resp.FinalizadoEm = &ts
	}
	return resp
}

func toApostilaResponse(item *entity.ApostilaRecolhida, today time.Time) *contract.ApostilaResponse {
	resp := &contract.ApostilaResponse{
		ID:                item.ID,
		AlunoID:           item.AlunoID,
		AlunoNome:         item.AlunoNome,
		TurmaID:           item.TurmaID,
		TurmaNome:         item.TurmaNome,
		ProfessorID:       item.ProfessorID,
		ProfessorNome:     item.ProfessorNome,
		Apostila:          item.Apostila,
		DataEntrega:       item.DataEntrega,
		Entregue:          item.Entregue,
		TotalCorrecoes:    item.TotalCorrecoes,
		CorrecaoIniciada:  item.CorrecaoIniciada,
		DiasParaEntrega:   daysUntilDue(item, today),
		DiasDesdeCorrecao: daysSinceCorrection(item, today),
		CreatedAt:         utils.FormatEpoch(item.CreatedAt),
		UpdatedAt:         utils.FormatEpoch(item.UpdatedAt),
	}

	if item.CorrecaoIniciada && item.CorrecaoIniciadaEm > 0 {
		ts := utils.FormatEpoch(item.CorrecaoIniciadaEm)
		resp.CorrecaoIniciadaEm = &ts
	}
	return resp
}

// daysUntilDue is negative when the due date has passed and nil without a due date.
func daysUntilDue(item *entity.ApostilaRecolhida, today time.Time) *int {
	due, ok := utils.ParseDate(item.DataEntrega)
	if !ok {
		return nil
	}

	days := utils.DaysBetween(today, due)
	return &days
}

func daysSinceCorrection(item *entity.ApostilaRecolhida, today time.Time) *int {
	if !item.CorrecaoIniciada || item.CorrecaoIniciadaEm <= 0 {
		return nil
	}

	started := time.UnixMilli(item.CorrecaoIniciadaEm).UTC()
	days := max(utils.DaysBetween(started, today), 0)
	return &days
}

func toClientResponse(client *entity.Client) *contract.ClientResponse {
	resp := &contract.ClientResponse{
		ID:        client.ID,
		Nome:      client.Nome,
		Telefone:  client.Telefone,
		Origem:    client.Origem,
		Status:    client.Status,
		Active:    client.Active,
		CreatedAt: utils.FormatEpoch(client.CreatedAt),
		UpdatedAt: utils.FormatEpoch(client.UpdatedAt),
	}

	if client.DeletedAt > 0 {
		resp.DeletedAt = utils.FormatEpoch(client.DeletedAt)
	}
	return resp
}

func toTurmaResponse(turma *entity.Turma) *contract.TurmaResponse {
	resp := &contract.TurmaResponse{
		ID:          turma.ID,
		Nome:        turma.Nome,
		DiaSemana:   turma.DiaSemana,
		Horario:     turma.Horario,
		ProfessorID: turma.ProfessorID,
	}

	if turma.Professor != nil {
		resp.ProfessorNome = turma.Professor.Nome
	}
	return resp
}

// photoURL appends the update time so browsers refetch a replaced photo.
func photoURL(publicURL func(string) string, aluno *entity.Aluno) *string {
	if aluno.FotoKey == "" || publicURL == nil {
		return nil
	}

	url := fmt.Sprintf("%s?v=%d", publicURL(aluno.FotoKey), aluno.UpdatedAt)
	return &url
}

func toAlunoResponse(aluno *entity.Aluno, publicURL func(string) string) *contract.AlunoResponse {
	resp := &contract.AlunoResponse{
		ID:            aluno.ID,
		Nome:          aluno.Nome,
		Codigo:        aluno.Codigo,
		TurmaID:       aluno.TurmaID,
		DataMatricula: aluno.DataMatricula,
		Ativo:         aluno.Ativo,
		FotoURL:       photoURL(publicURL, aluno),
		CreatedAt:     utils.FormatEpoch(aluno.CreatedAt),
		UpdatedAt:     utils.FormatEpoch(aluno.UpdatedAt),
	}

	if aluno.Turma != nil {
		resp.TurmaNome = aluno.Turma.Nome
	}
	return resp
}

func toReposicaoResponse(rep *entity.Reposicao) *contract.ReposicaoResponse {
	return &contract.ReposicaoResponse{
		ID:        rep.ID,
		AlunoID:   rep.AlunoID,
		TurmaID:   rep.TurmaID,
		Data:      rep.Data,
		CreatedAt: utils.FormatEpoch(rep.CreatedAt),
	}
}

func toAlertResponse(alert *entity.AlertaFalta) *contract.AlertResponse {
	return &contract.AlertResponse{
		ID:             alert.ID,
		AlunoID:        alert.AlunoID,
		Tipo:           string(alert.Tipo),
		DataReferencia: alert.DataReferencia,
		TotalFaltas:    alert.TotalFaltas,
		KanbanCardID:   alert.KanbanCardID,
		Notificado:     alert.Notificado,
		CreatedAt:      utils.FormatEpoch(alert.CreatedAt),
	}
}

func toUserResponse(user *entity.User) *contract.UserResponse {
	return &contract.UserResponse{
		ID:          user.ID,
		Nome:        user.Nome,
		Email:       user.Email,
		UnidadeID:   user.UnidadeID,
		Permissions: int64(user.Permissions),
		CreatedAt:   utils.FormatEpoch(user.CreatedAt),
	}
}

// mapPage converts the items of a listing page, keeping the totals.
func mapPage[T, R any](p listing.Page[T], fn func(T) R) listing.Page[R] {
	items := make([]R, len(p.Items))
	for i, item := range p.Items {
		items[i] = fn(item)
	}

	return listing.Page[R]{
		Items:      items,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalItems: p.TotalItems,
		TotalPages: p.TotalPages,
	}
}
