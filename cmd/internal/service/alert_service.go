package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/labstack/gommon/log"

	"secretaria/cmd/internal/contract"
	"secretaria/cmd/internal/domain/entity"
	"secretaria/cmd/internal/domain/events"
	"secretaria/cmd/internal/domain/policy"
	"secretaria/cmd/internal/utils"
	"secretaria/cmd/internal/utils/apierror"
	"secretaria/cmd/internal/utils/uid"
)

type AlertRepository interface {
	Exists(alunoID int64, tipo entity.AlertType, dataReferencia string) (bool, error)
	CreateWithCard(alert *entity.AlertaFalta, card *entity.KanbanCard) (bool, error)
	MarkNotified(id int64) error
	FindAllByUnidade(unidadeID int64) ([]*entity.AlertaFalta, error)
}

type ConfigRepository interface {
	Get(key string) (string, error)
}

// SlackPoster posts a plain text message to a channel.
type SlackPoster interface {
	PostMessage(ctx context.Context, channel, text string) error
}

// AlertSettings holds the absence thresholds.
type AlertSettings struct {
	TenureDays          int
	ConsecutiveAbsences int
}

type DefaultAlertService struct {
	AlunoRepo      AlunoRepository
	AttendanceRepo AttendanceRepository
	AlertRepo      AlertRepository
	ConfigRepo     ConfigRepository
	Slack          SlackPoster
	Broadcaster    Broadcaster
	Settings       AlertSettings

	// serializes runs, the scheduler and RunCheck may overlap
	mu sync.Mutex
}

func NewAlertService(
	alunoRepo AlunoRepository,
	attendanceRepo AttendanceRepository,
	alertRepo AlertRepository,
	configRepo ConfigRepository,
	slack SlackPoster,
	broadcaster Broadcaster,
	settings AlertSettings,
) *DefaultAlertService {
	return &DefaultAlertService{
		AlunoRepo:      alunoRepo,
		AttendanceRepo: attendanceRepo,
		AlertRepo:      alertRepo,
		ConfigRepo:     configRepo,
		Slack:          slack,
		Broadcaster:    broadcaster,
		Settings:       settings,
	}
}

func (a *DefaultAlertService) ListAlerts(actor *entity.User) ([]*contract.AlertResponse, apierror.ErrorResponse) {
	if err := policy.Require(actor, entity.PermissionViewAlerts); err != nil {
		return nil, err
	}

	alerts, err := a.AlertRepo.FindAllByUnidade(actor.UnidadeID)
	if err != nil {
		log.Errorf("failed to fetch alerts: %v", err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*contract.AlertResponse, len(alerts))
	for i, alert := range alerts {
		resp[i] = toAlertResponse(alert)
	}
	return resp, nil
}

// RunCheck triggers a check on demand. Administrators only.
func (a *DefaultAlertService) RunCheck(ctx context.Context, actor *entity.User) (*contract.AlertRunResponse, apierror.ErrorResponse) {
	if err := policy.Require(actor, entity.PermissionAdministrator); err != nil {
		return nil, err
	}

	resp, err := a.CheckAbsences(ctx)
	if err != nil {
		log.Errorf("failed to check absences: %v", err)
		return nil, apierror.InternalServerError
	}
	return resp, nil
}

// CheckAbsences evaluates every active aluno and raises the alerts not raised
// before. A failure on one aluno does not stop the others.
func (a *DefaultAlertService) CheckAbsences(ctx context.Context) (*contract.AlertRunResponse, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	alunos, err := a.AlunoRepo.FindActive()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch active alunos: %w", err)
	}

	channel, err := a.ConfigRepo.Get(entity.ConfigSlackAlertChannel)
	if err != nil {
		log.Errorf("failed to read slack channel: %v", err)
	}

	today := utils.Today()
	run := &contract.AlertRunResponse{}
	var errs []error
	for _, aluno := range alunos {
		if ctx.Err() != nil {
			return run, ctx.Err()
		}

		records, err := a.AttendanceRepo.FindByAluno(aluno.ID)
		if err != nil {
			errs = append(errs, fmt.Errorf("aluno %d: %w", aluno.ID, err))
			continue
		}
		run.Checked++

		for _, alert := range EvaluateAbsences(aluno, records, today, a.Settings) {
			created, notified, err := a.raise(ctx, aluno, alert, channel)
			if err != nil {
				errs = append(errs, fmt.Errorf("aluno %d: %w", aluno.ID, err))
				continue
			}

			if created {
				run.Created++
			}
			if notified {
				run.Notified++
			}
		}
	}
	return run, errors.Join(errs...)
}

func (a *DefaultAlertService) raise(ctx context.Context, aluno *entity.Aluno, alert *entity.AlertaFalta, channel string) (bool, bool, error) {
	exists, err := a.AlertRepo.Exists(alert.AlunoID, alert.Tipo, alert.DataReferencia)
	if err != nil {
		return false, false, err
	}

	if exists {
		return false, false, nil
	}

	now := utils.NowUTC()
	alert.ID = uid.Generate()
	alert.CreatedAt = now
	card := alertCard(aluno, alert, now)

	created, err := a.AlertRepo.CreateWithCard(alert, card)
	if err != nil || !created {
		return false, false, err
	}
	go a.dispatchCardCreated(card)

	if !a.notify(ctx, aluno, alert, channel) {
		return true, false, nil
	}

	if err = a.AlertRepo.MarkNotified(alert.ID); err != nil {
		return true, false, err
	}
	return true, true, nil
}

// notify posts to Slack. Without a channel or a client the alert stays un-notified.
func (a *DefaultAlertService) notify(ctx context.Context, aluno *entity.Aluno, alert *entity.AlertaFalta, channel string) bool {
	if channel == "" || a.Slack == nil {
		log.Warnf("slack alert channel not configured, alert %d left un-notified", alert.ID)
		return false
	}

	text := ":warning: " + alert.Describe(aluno.Nome)
	if err := a.Slack.PostMessage(ctx, channel, text); err != nil {
		log.Errorf("failed to post alert %d to slack: %v", alert.ID, err)
		return false
	}
	return true
}

func (a *DefaultAlertService) dispatchCardCreated(card *entity.KanbanCard) {
	if a.Broadcaster == nil {
		return
	}
	a.Broadcaster.BroadcastToUnidade(context.Background(), card.UnidadeID, &events.KanbanCardCreated{
		CardResponse: toCardResponse(card),
	})
}

func alertCard(aluno *entity.Aluno, alert *entity.AlertaFalta, now int64) *entity.KanbanCard {
	titulo := "Faltas consecutivas"
	if alert.Tipo == entity.AlertNewStudent {
		titulo = "Aluno novo faltou"
	}

	motivo := alert.Describe(aluno.Nome)
	return &entity.KanbanCard{
		ID:           uid.Generate(),
		UnidadeID:    aluno.UnidadeID,
		AlunoID:      &aluno.ID,
		AlunoNome:    aluno.Nome,
		Titulo:       titulo,
		Descricao:    motivo,
		MotivoAlerta: motivo,
		ColumnID:     entity.ColumnCreated,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// EvaluateAbsences applies both absence criteria to the attendance records of
// an aluno, given in chronological order. The returned alerts carry no id yet.
func EvaluateAbsences(aluno *entity.Aluno, records []*entity.Presenca, today time.Time, settings AlertSettings) []*entity.AlertaFalta {
	if len(records) == 0 {
		return nil
	}

	last := records[len(records)-1]
	if last.Presente {
		return nil
	}

	streak := trailingAbsences(records)
	newAlert := func(tipo entity.AlertType) *entity.AlertaFalta {
		return &entity.AlertaFalta{
			UnidadeID:      aluno.UnidadeID,
			AlunoID:        aluno.ID,
			Tipo:           tipo,
			DataReferencia: last.Data,
			TotalFaltas:    streak,
		}
	}

	var alerts []*entity.AlertaFalta
	if enrolled, ok := utils.ParseDate(aluno.DataMatricula); ok {
		tenure := utils.DaysBetween(enrolled, today)
		if tenure >= 0 && tenure <= settings.TenureDays {
			alerts = append(alerts, newAlert(entity.AlertNewStudent))
		}
	}

	if n := settings.ConsecutiveAbsences; n > 0 && streak >= n {
		alerts = append(alerts, newAlert(entity.AlertConsecutiveAbsences))
	}
	return alerts
}

func trailingAbsences(records []*entity.Presenca) int {
	count := 0
	for i := len(records) - 1; i >= 0 && !records[i].Presente; i-- {
		count++
	}
	return count
}
