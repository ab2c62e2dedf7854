package service

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/labstack/gommon/log"
	"github.com/xuri/excelize/v2"

	"secretaria/cmd/internal/domain/entity"
	"secretaria/cmd/internal/utils"
)

var (
	ErrEmptySheet       = errors.New("sheet has no rows")
	ErrMissingColumn    = errors.New("required column not found")
	ErrNoDefaultUnidade = errors.New("default unidade not registered")
)

// ApostilaWriter persists a batch of imported rows.
type ApostilaWriter interface {
	SaveAll(items []*entity.ApostilaRecolhida) error
}

type ImportOptions struct {
	Sheet  string
	DryRun bool
}

type SkippedRow struct {
	Row    int
	Reason string
}

type ImportReport struct {
	Sheet    string
	Rows     int
	Imported int
	Skipped  []SkippedRow
	DryRun   bool
}

const (
	colAluno     = "aluno"
	colCodigo    = "codigo"
	colApostila  = "apostila"
	colEntrega   = "entrega"
	colUnidade   = "unidade"
	colTurma     = "turma"
	colProfessor = "professor"
)

// headerAliases maps normalized header names to columns.
var headerAliases = map[string]string{
	"aluno":           colAluno,
	"nome":            colAluno,
	"nome do aluno":   colAluno,
	"codigo":          colCodigo,
	"apostila":        colApostila,
	"data de entrega": colEntrega,
	"entrega":         colEntrega,
	"unidade":         colUnidade,
	"turma":           colTurma,
	"professor":       colProfessor,
}

type DefaultImportService struct {
	SchoolRepo   SchoolRepository
	AlunoRepo    AlunoRepository
	ApostilaRepo ApostilaWriter
}

func NewImportService(schoolRepo SchoolRepository, alunoRepo AlunoRepository, apostilaRepo ApostilaWriter) *DefaultImportService {
	return &DefaultImportService{
		SchoolRepo:   schoolRepo,
		AlunoRepo:    alunoRepo,
		ApostilaRepo: apostilaRepo,
	}
}

// Import reads the collected-material spreadsheet and inserts one row per
// matched aluno. Unmatched rows are reported, never fatal.
func (s *DefaultImportService) Import(r io.Reader, opts ImportOptions) (*ImportReport, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close()

	sheet := opts.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	if len(rows) == 0 {
		return nil, ErrEmptySheet
	}

	cols := mapHeaders(rows[0])
	for _, required := range []string{colAluno, colApostila} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, required)
		}
	}

	unidades, err := s.loadUnidades()
	if err != nil {
		return nil, err
	}

	report := &ImportReport{Sheet: sheet, Rows: len(rows) - 1, DryRun: opts.DryRun}
	matchers := make(map[int64]*alunoMatcher)
	now := utils.NowUTC()

	var items []*entity.ApostilaRecolhida
	for i, row := range rows[1:] {
		line := i + 2
		cell := func(col string) string {
			idx, ok := cols[col]
			if !ok || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}

		if isBlankRow(row) {
			report.Rows--
			continue
		}

		nome, apostila := cell(colAluno), cell(colApostila)
		if nome == "" || apostila == "" {
			report.skip(line, "aluno ou apostila em branco")
			continue
		}

		dataEntrega := ""
		if raw := cell(colEntrega); raw != "" {
			day, ok := utils.ParseFlexibleDate(raw)
			if !ok {
				report.skip(line, fmt.Sprintf("data de entrega inválida: %s", raw))
				continue
			}
			dataEntrega = utils.FormatDate(day)
		}

		unidade := unidades.resolve(cell(colUnidade))
		matcher, ok := matchers[unidade.ID]
		if !ok {
			alunos, err := s.AlunoRepo.FindAllByUnidade(unidade.ID, nil)
			if err != nil {
				return nil, fmt.Errorf("failed to load alunos of %s: %w", unidade.Nome, err)
			}
			matcher = newAlunoMatcher(alunos)
			matchers[unidade.ID] = matcher
		}

		aluno, reason := matcher.match(cell(colCodigo), nome)
		if aluno == nil {
			report.skip(line, reason)
			continue
		}

		item := NewApostilaRecolhida(aluno, apostila, dataEntrega, now)
		if item.TurmaNome == "" {
			item.TurmaNome = cell(colTurma)
		}
		if item.ProfessorNome == "" {
			item.ProfessorNome = cell(colProfessor)
		}
		items = append(items, item)
	}

	report.Imported = len(items)
	if opts.DryRun || len(items) == 0 {
		return report, nil
	}

	if err = s.ApostilaRepo.SaveAll(items); err != nil {
		return nil, fmt.Errorf("failed to save imported rows: %w", err)
	}
	log.Infof("imported %d apostilas from sheet %q (%d skipped)", report.Imported, sheet, len(report.Skipped))
	return report, nil
}

func (r *ImportReport) skip(row int, reason string) {
	r.Skipped = append(r.Skipped, SkippedRow{Row: row, Reason: reason})
}

func mapHeaders(header []string) map[string]int {
	cols := make(map[string]int)
	for i, h := range header {
		col, ok := headerAliases[utils.NormalizeName(h)]
		if !ok {
			continue
		}

		// first occurrence wins
		if _, dup := cols[col]; !dup {
			cols[col] = i
		}
	}
	return cols
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

type unidadeIndex struct {
	byName   map[string]*entity.Unidade
	fallback *entity.Unidade
}

func (s *DefaultImportService) loadUnidades() (*unidadeIndex, error) {
	unidades, err := s.SchoolRepo.FindUnidades()
	if err != nil {
		return nil, fmt.Errorf("failed to load unidades: %w", err)
	}

	idx := &unidadeIndex{byName: make(map[string]*entity.Unidade, len(unidades))}
	for _, u := range unidades {
		idx.byName[utils.NormalizeName(u.Nome)] = u
	}

	idx.fallback = idx.byName[utils.NormalizeName(entity.DefaultUnidadeNome)]
	if idx.fallback == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoDefaultUnidade, entity.DefaultUnidadeNome)
	}
	return idx, nil
}

// resolve falls back to the default unidade for empty or unknown names.
func (u *unidadeIndex) resolve(name string) *entity.Unidade {
	if found, ok := u.byName[utils.NormalizeName(name)]; ok {
		return found
	}
	return u.fallback
}

type alunoMatcher struct {
	byCode map[string]*entity.Aluno
	byName map[string][]*entity.Aluno
	names  []string
}

func newAlunoMatcher(alunos []*entity.Aluno) *alunoMatcher {
	m := &alunoMatcher{
		byCode: make(map[string]*entity.Aluno),
		byName: make(map[string][]*entity.Aluno),
	}

	for _, a := range alunos {
		if a.Codigo != nil && *a.Codigo != "" {
			m.byCode[utils.NormalizeName(*a.Codigo)] = a
		}

		key := utils.NormalizeName(a.Nome)
		if _, seen := m.byName[key]; !seen {
			m.names = append(m.names, key)
		}
		m.byName[key] = append(m.byName[key], a)
	}
	return m
}

// match tries the code, then the full name, then a unique name prefix.
func (m *alunoMatcher) match(codigo, nome string) (*entity.Aluno, string) {
	if codigo != "" {
		if a, ok := m.byCode[utils.NormalizeName(codigo)]; ok {
			return a, ""
		}
	}

	key := utils.NormalizeName(nome)
	switch found := m.byName[key]; len(found) {
	case 1:
		return found[0], ""
	case 0:
	default:
		return nil, fmt.Sprintf("nome ambíguo: %s", nome)
	}

	var candidate string
	for _, name := range m.names {
		if !strings.HasPrefix(name, key+" ") {
			continue
		}

		if candidate != "" {
			return nil, fmt.Sprintf("nome ambíguo: %s", nome)
		}
		candidate = name
	}

	if candidate == "" || len(m.byName[candidate]) != 1 {
		return nil, fmt.Sprintf("aluno não encontrado: %s", nome)
	}
	return m.byName[candidate][0], ""
}
