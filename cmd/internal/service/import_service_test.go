package service

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"secretaria/cmd/internal/domain/database/repository"
	"secretaria/cmd/internal/domain/entity"
)

func spreadsheet(t *testing.T, sheet string, rows [][]any) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", sheet))

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

type importFixture struct {
	svc       *DefaultImportService
	apostilas *repository.DefaultApostilaRepository
}

func setupImport(t *testing.T) *importFixture {
	db := setupDB(t)
	require.NoError(t, db.Create([]*entity.Unidade{{ID: 1, Nome: "Maringá"}, {ID: 2, Nome: "Londrina"}}).Error)

	prof := &entity.Professor{ID: 1, UnidadeID: 1, Nome: "Marta"}
	turma := &entity.Turma{ID: 1, UnidadeID: 1, Nome: "Quarta 14h", DiaSemana: 3, ProfessorID: &prof.ID}
	require.NoError(t, db.Create(prof).Error)
	require.NoError(t, db.Create(turma).Error)

	alunos := repository.NewAlunoRepository(db)
	seed := []*entity.Aluno{
		{ID: 1, UnidadeID: 1, TurmaID: &turma.ID, Nome: "João da Silva", Codigo: ptr("A-001"), Ativo: true},
		{ID: 2, UnidadeID: 1, Nome: "Maria Souza", Ativo: true},
		{ID: 3, UnidadeID: 1, Nome: "Pedro Alves", Ativo: true},
		{ID: 4, UnidadeID: 1, Nome: "Pedro Lima", Ativo: true},
		{ID: 5, UnidadeID: 2, Nome: "Lucas Prado", Ativo: true},
	}
	for _, a := range seed {
		a.CreatedAt, a.UpdatedAt = 1, 1
		require.NoError(t, alunos.Save(a))
	}

	apostilas := repository.NewApostilaRepository(db)
	return &importFixture{
		svc:       NewImportService(repository.NewSchoolRepository(db), alunos, apostilas),
		apostilas: apostilas,
	}
}

func TestImport(t *testing.T) {
	f := setupImport(t)
	buf := spreadsheet(t, "Recolhidas", [][]any{
		{"Nome do Aluno", " Código ", "APOSTILA", "Data de Entrega", "Unidade", "Turma", "Professor"},
		{"Joao Silva", "a-001", "AH 3", "20/03/2025", "", "", ""},
		{"maria souza", "", "AH 1", "2025-03-18", "maringa", "Sábado", "Rita"},
		{"Pedro", "", "AH 2", "", "", "", ""},
		{"Lucas", "", "AH 4", "", "Londrina", "", ""},
		{"Ana", "", "AH 5", "", "", "", ""},
		{"Maria Souza", "", "", "", "", "", ""},
		{"Maria Souza", "", "AH 6", "amanhã", "", "", ""},
		{"", "", "", "", "", "", ""},
	})

	report, err := f.svc.Import(buf, ImportOptions{Sheet: "Recolhidas"})
	require.NoError(t, err)
	assert.Equal(t, 7, report.Rows)
	assert.Equal(t, 3, report.Imported)
	require.Len(t, report.Skipped, 4)
	assert.Equal(t, SkippedRow{Row: 4, Reason: "nome ambíguo: Pedro"}, report.Skipped[0])
	assert.Equal(t, SkippedRow{Row: 6, Reason: "aluno não encontrado: Ana"}, report.Skipped[1])
	assert.Equal(t, 7, report.Skipped[2].Row)
	assert.Equal(t, 8, report.Skipped[3].Row)

	maringa, err := f.apostilas.FindAllByUnidade(1)
	require.NoError(t, err)
	require.Len(t, maringa, 2)

	byAluno := map[int64]*entity.ApostilaRecolhida{}
	for _, item := range maringa {
		byAluno[item.AlunoID] = item
	}

	joao := byAluno[1]
	require.NotNil(t, joao)
	assert.Equal(t, "2025-03-20", joao.DataEntrega)
	assert.Equal(t, "Quarta 14h", joao.TurmaNome)
	assert.Equal(t, "Marta", joao.ProfessorNome)

	maria := byAluno[2]
	require.NotNil(t, maria)
	assert.Equal(t, "Sábado", maria.TurmaNome)
	assert.Equal(t, "Rita", maria.ProfessorNome)

	londrina, err := f.apostilas.FindAllByUnidade(2)
	require.NoError(t, err)
	require.Len(t, londrina, 1)
	assert.Equal(t, "Lucas Prado", londrina[0].AlunoNome)
}

func TestImport_DryRunWritesNothing(t *testing.T) {
	f := setupImport(t)
	buf := spreadsheet(t, "Sheet1", [][]any{
		{"Aluno", "Apostila"},
		{"Maria Souza", "AH 1"},
	})

	report, err := f.svc.Import(buf, ImportOptions{DryRun: true})
	require.NoError(t, err)
	assert.True(t, report.DryRun)
	assert.Equal(t, 1, report.Imported)

	items, err := f.apostilas.FindAllByUnidade(1)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestImport_MissingColumn(t *testing.T) {
	f := setupImport(t)
	buf := spreadsheet(t, "Sheet1", [][]any{
		{"Aluno", "Turma"},
		{"Maria Souza", "Quarta"},
	})

	_, err := f.svc.Import(buf, ImportOptions{})
	assert.ErrorIs(t, err, ErrMissingColumn)
}
