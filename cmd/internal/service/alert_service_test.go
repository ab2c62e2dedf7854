package service

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"secretaria/cmd/internal/domain/database/repository"
	"secretaria/cmd/internal/domain/entity"
	"secretaria/cmd/internal/domain/events"
	"secretaria/cmd/internal/utils"
)

var defaultSettings = AlertSettings{TenureDays: 90, ConsecutiveAbsences: 2}

// history builds chronological attendance records, one per week ending on the
// pinned clock's Wednesday. 'P' is a presence and 'F' an absence.
func history(alunoID int64, pattern string) []*entity.Presenca {
	records := make([]*entity.Presenca, len(pattern))
	start := utils.Today().AddDate(0, 0, -7*(len(pattern)-1))
	for i, mark := range pattern {
		records[i] = &entity.Presenca{
			ID:        alunoID*100 + int64(i),
			UnidadeID: 1,
			AlunoID:   alunoID,
			TurmaID:   1,
			Data:      utils.FormatDate(start.AddDate(0, 0, 7*i)),
			Presente:  mark == 'P',
		}
	}
	return records
}

func TestEvaluateAbsences(t *testing.T) {
	veteran := &entity.Aluno{ID: 1, UnidadeID: 1, Nome: "Ana", DataMatricula: "2023-02-01"}
	newcomer := &entity.Aluno{ID: 2, UnidadeID: 1, Nome: "Bruno", DataMatricula: "2025-02-10"}
	noDate := &entity.Aluno{ID: 3, UnidadeID: 1, Nome: "Carla"}

	tests := []struct {
		name    string
		aluno   *entity.Aluno
		pattern string
		want    []entity.AlertType
		faltas  int
	}{
		{"no records", veteran, "", nil, 0},
		{"present last", veteran, "FFP", nil, 0},
		{"single absence of a veteran", veteran, "PPF", nil, 0},
		{"two absences in a row", veteran, "PFF", []entity.AlertType{entity.AlertConsecutiveAbsences}, 2},
		{"streak counts every trailing absence", veteran, "FFF", []entity.AlertType{entity.AlertConsecutiveAbsences}, 3},
		{"newcomer misses once", newcomer, "PF", []entity.AlertType{entity.AlertNewStudent}, 1},
		{"newcomer meets both", newcomer, "FF", []entity.AlertType{entity.AlertNewStudent, entity.AlertConsecutiveAbsences}, 2},
		{"unknown enrollment date", noDate, "PF", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alerts := EvaluateAbsences(tt.aluno, history(tt.aluno.ID, tt.pattern), utils.Today(), defaultSettings)

			var got []entity.AlertType
			for _, a := range alerts {
				got = append(got, a.Tipo)
				assert.Equal(t, "2025-03-12", a.DataReferencia)
				assert.Equal(t, tt.faltas, a.TotalFaltas)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluateAbsences_ThresholdsAreConfigurable(t *testing.T) {
	aluno := &entity.Aluno{ID: 1, UnidadeID: 1, Nome: "Ana", DataMatricula: "2025-01-01"}
	records := history(1, "PFF")

	alerts := EvaluateAbsences(aluno, records, utils.Today(), AlertSettings{TenureDays: 30, ConsecutiveAbsences: 3})
	assert.Empty(t, alerts)

	alerts = EvaluateAbsences(aluno, records, utils.Today(), AlertSettings{TenureDays: 90, ConsecutiveAbsences: 3})
	require.Len(t, alerts, 1)
	assert.Equal(t, entity.AlertNewStudent, alerts[0].Tipo)
}

type alertFixture struct {
	svc         *DefaultAlertService
	alerts      *repository.DefaultAlertRepository
	kanban      *repository.DefaultKanbanRepository
	config      *repository.DefaultConfigRepository
	slack       *fakeSlack
	broadcaster *fakeBroadcaster
}

func setupAlerts(t *testing.T) *alertFixture {
	db := setupDB(t)

	alunoRepo := repository.NewAlunoRepository(db)
	attendance := repository.NewAttendanceRepository(db)
	seed := map[*entity.Aluno]string{
		{ID: 1, UnidadeID: 1, Nome: "Ana", DataMatricula: "2023-02-01", Ativo: true}:  "PFF",
		{ID: 2, UnidadeID: 1, Nome: "Bruno", DataMatricula: "2025-03-01", Ativo: true}: "PF",
		{ID: 3, UnidadeID: 1, Nome: "Carla", DataMatricula: "2023-02-01", Ativo: true}: "FFP",
		{ID: 4, UnidadeID: 1, Nome: "Diego", DataMatricula: "2023-02-01"}:              "FFF",
	}
	for aluno, pattern := range seed {
		aluno.CreatedAt, aluno.UpdatedAt = 1, 1
		require.NoError(t, alunoRepo.Save(aluno))
		for _, p := range history(aluno.ID, pattern) {
			require.NoError(t, attendance.SavePresenca(p))
		}
	}

	f := &alertFixture{
		alerts:      repository.NewAlertRepository(db),
		kanban:      repository.NewKanbanRepository(db),
		config:      repository.NewConfigRepository(db),
		slack:       &fakeSlack{},
		broadcaster: newFakeBroadcaster(),
	}
	f.svc = NewAlertService(alunoRepo, attendance, f.alerts, f.config, f.slack, f.broadcaster, defaultSettings)
	return f
}

func TestCheckAbsences(t *testing.T) {
	f := setupAlerts(t)
	require.NoError(t, f.config.Set(entity.ConfigSlackAlertChannel, "#alertas"))

	run, err := f.svc.CheckAbsences(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, run.Checked)
	assert.Equal(t, 2, run.Created)
	assert.Equal(t, 2, run.Notified)

	alerts, err := f.alerts.FindAllByUnidade(1)
	require.NoError(t, err)
	require.Len(t, alerts, 2)

	for _, alert := range alerts {
		assert.True(t, alert.Notificado)
		require.NotNil(t, alert.KanbanCardID)

		card, err := f.kanban.FindByID(*alert.KanbanCardID)
		require.NoError(t, err)
		require.NotNil(t, card)
		assert.Equal(t, entity.ColumnCreated, card.ColumnID)
		assert.NotEmpty(t, card.MotivoAlerta)
		require.NotNil(t, card.AlertaID)
		assert.Equal(t, alert.ID, *card.AlertaID)
	}

	assert.Equal(t, []string{"#alertas", "#alertas"}, f.slack.channels)
	assert.Contains(t, f.slack.messages, ":warning: Ana faltou 2 aulas consecutivas (última em 2025-03-12)")
	assert.Contains(t, f.slack.messages, ":warning: Aluno novo Bruno faltou na aula de 2025-03-12")

	for range 2 {
		evt := waitFor(t, f.broadcaster.events)
		assert.IsType(t, &events.KanbanCardCreated{}, evt)
	}

	// the same absences never alert twice
	run, err = f.svc.CheckAbsences(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, run.Created)
	assert.Len(t, f.slack.messages, 2)
}

func TestCheckAbsences_WithoutChannelStaysUnnotified(t *testing.T) {
	f := setupAlerts(t)

	run, err := f.svc.CheckAbsences(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, run.Created)
	assert.Equal(t, 0, run.Notified)
	assert.Empty(t, f.slack.messages)

	alerts, _ := f.alerts.FindAllByUnidade(1)
	for _, alert := range alerts {
		assert.False(t, alert.Notificado)
	}
}

func TestCheckAbsences_SlackFailureKeepsAlert(t *testing.T) {
	f := setupAlerts(t)
	require.NoError(t, f.config.Set(entity.ConfigSlackAlertChannel, "#alertas"))
	f.slack.err = fmt.Errorf("slack down")

	run, err := f.svc.CheckAbsences(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, run.Created)
	assert.Equal(t, 0, run.Notified)
}

func TestListAlerts_RequiresPermission(t *testing.T) {
	f := setupAlerts(t)

	_, err := f.svc.ListAlerts(actorWith(entity.PermissionViewBoard))
	require.NotNil(t, err)

	alerts, err := f.svc.ListAlerts(actorWith(entity.PermissionViewAlerts))
	require.Nil(t, err)
	assert.Empty(t, alerts)
}

func TestRunCheck_AdministratorOnly(t *testing.T) {
	f := setupAlerts(t)

	_, err := f.svc.RunCheck(context.Background(), actorWith(entity.PermissionViewAlerts))
	require.NotNil(t, err)
	assert.Equal(t, http.StatusForbidden, err.Code())

	alerts, ferr := f.alerts.FindAllByUnidade(1)
	require.NoError(t, ferr)
	assert.Empty(t, alerts)

	run, err := f.svc.RunCheck(context.Background(), actorWith(entity.PermissionAdministrator))
	require.Nil(t, err)
	assert.Equal(t, 2, run.Created)
}

// staleAlertRepo never sees an existing alert, as when two runs race between
// the lookup and the insert.
type staleAlertRepo struct {
	*repository.DefaultAlertRepository
}

func (staleAlertRepo) Exists(int64, entity.AlertType, string) (bool, error) {
	return false, nil
}

func TestCheckAbsences_DuplicateInsertIsNotAnError(t *testing.T) {
	f := setupAlerts(t)
	require.NoError(t, f.config.Set(entity.ConfigSlackAlertChannel, "#alertas"))
	f.svc.AlertRepo = staleAlertRepo{f.alerts}

	run, err := f.svc.CheckAbsences(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, run.Created)

	run, err = f.svc.CheckAbsences(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, run.Checked)
	assert.Equal(t, 0, run.Created)
	assert.Equal(t, 0, run.Notified)
	assert.Len(t, f.slack.messages, 2)

	alerts, err := f.alerts.FindAllByUnidade(1)
	require.NoError(t, err)
	assert.Len(t, alerts, 2)
}

func TestCheckAbsences_ConcurrentRunsRaiseOnce(t *testing.T) {
	f := setupAlerts(t)

	const runs = 4
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
		errs    []error
	)
	for range runs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			run, err := f.svc.CheckAbsences(context.Background())
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			created += run.Created
		}()
	}
	wg.Wait()

	assert.Empty(t, errs)
	assert.Equal(t, 2, created)

	alerts, err := f.alerts.FindAllByUnidade(1)
	require.NoError(t, err)
	assert.Len(t, alerts, 2)
}
