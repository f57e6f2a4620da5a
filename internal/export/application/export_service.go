package application

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	analyticsapp "jnmoveis/internal/analytics/application"
	analyticsdomain "jnmoveis/internal/analytics/domain"
	"jnmoveis/internal/export/domain"
	sharedinfra "jnmoveis/internal/shared/infrastructure"
)

const (
	defaultBatchSize = 1000
	defaultWorkers   = 4
)

// Analytics accès au moteur d'analyse (EngineProvider en production)
type Analytics interface {
	Run(ctx context.Context, q analyticsdomain.Query) (analyticsdomain.Report, error)
	Engine(ctx context.Context) (*analyticsapp.Engine, error)
}

// Export résultat d'un export en mémoire
type Export struct {
	Job  *domain.ExportJob
	Data []byte
	Rows int
}

// ExportService exporte les vues et la table consolidée en CSV ou JSON, en mémoire
type ExportService struct {
	analytics Analytics
	batchSize int
	workers   int
	logger    *slog.Logger
}

// NewExportService crée le service d'export
func NewExportService(analytics Analytics, logger *slog.Logger) *ExportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExportService{
		analytics: analytics,
		batchSize: defaultBatchSize,
		workers:   defaultWorkers,
		logger:    logger,
	}
}

// ExportView exporte le rapport d'une vue.
// En CSV chaque colonne numérique donne deux colonnes: la valeur brute et sa forme affichée (<clé>_texto).
func (s *ExportService) ExportView(ctx context.Context, q analyticsdomain.Query, format domain.ExportFormat) (Export, error) {
	if q == nil {
		return Export{}, fmt.Errorf("%w: nil query", analyticsdomain.ErrUnknownView)
	}
	job, err := domain.NewExportJob(format, domain.ExportTypeView, q.Kind())
	if err != nil {
		return Export{}, err
	}
	report, err := s.analytics.Run(ctx, q)
	if err != nil {
		return Export{}, err
	}

	var data []byte
	switch format {
	case domain.ExportFormatJSON:
		data, err = json.MarshalIndent(report, "", "  ")
	default:
		data, err = reportCSV(report)
	}
	if err != nil {
		return Export{}, fmt.Errorf("encode %s: %w", q.Kind(), err)
	}

	rows := 0
	for _, sec := range report.Sections {
		rows += sec.Table.Len() + len(sec.Fields)
	}
	s.logger.Info("view exported", "job", job.ID(), "view", q.Kind().String(), "format", format, "rows", rows)
	return Export{Job: job, Data: data, Rows: rows}, nil
}

func reportCSV(report analyticsdomain.Report) ([]byte, error) {
	buffer := bytes.NewBuffer(make([]byte, 0, 16*1024))
	writer := csv.NewWriter(buffer)

	multi := len(report.Sections) > 1
	for _, sec := range report.Sections {
		if multi && sec.Title != "" {
			if err := writer.Write([]string{sec.Title}); err != nil {
				return nil, err
			}
		}
		if len(sec.Fields) > 0 {
			if err := writer.Write([]string{"campo", "valor", "texto"}); err != nil {
				return nil, err
			}
			for _, f := range sec.Fields {
				if err := writer.Write([]string{f.Key, rawValue(analyticsdomain.ColumnDecimal, f.Cell), f.Cell.Text}); err != nil {
					return nil, err
				}
			}
		}
		if sec.Table != nil {
			if err := writeTable(writer, sec.Table); err != nil {
				return nil, err
			}
		}
		for _, line := range sec.Lines {
			if err := writer.Write([]string{line}); err != nil {
				return nil, err
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func writeTable(writer *csv.Writer, t *analyticsdomain.Table) error {
	header := make([]string, 0, 2*len(t.Columns))
	for _, c := range t.Columns {
		header = append(header, c.Key)
		if c.Kind.Numeric() {
			header = append(header, c.Key+"_texto")
		}
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	record := make([]string, 0, len(header))
	for _, row := range t.Rows {
		record = record[:0]
		for i, c := range t.Columns {
			if !c.Kind.Numeric() {
				record = append(record, row[i].Text)
				continue
			}
			record = append(record, rawValue(c.Kind, row[i]), row[i].Text)
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	return nil
}

// rawValue valeur brute d'une cellule numérique, vide quand elle est absente
func rawValue(kind analyticsdomain.ColumnKind, c analyticsdomain.Cell) string {
	if c.Missing || (!kind.Numeric()) {
		return ""
	}
	if kind == analyticsdomain.ColumnInteger {
		return strconv.FormatInt(int64(c.Value), 10)
	}
	return strconv.FormatFloat(c.Value, 'f', -1, 64)
}

// ExportFacts exporte la table consolidée en CSV.
// Les lots sont encodés en parallèle par le worker pool puis assemblés dans l'ordre.
func (s *ExportService) ExportFacts(ctx context.Context) (Export, error) {
	start := time.Now()
	job, err := domain.NewExportJob(domain.ExportFormatCSV, domain.ExportTypeFacts, 0)
	if err != nil {
		return Export{}, err
	}
	engine, err := s.analytics.Engine(ctx)
	if err != nil {
		return Export{}, err
	}
	facts := engine.Facts()

	numBatches := (len(facts) + s.batchSize - 1) / s.batchSize
	batches := make([]*bytes.Buffer, numBatches)

	pool := sharedinfra.NewWorkerPool(ctx, s.workers)
	pool.Start()
	for i := 0; i < numBatches; i++ {
		batchStart := i * s.batchSize
		batchEnd := min(batchStart+s.batchSize, len(facts))
		slot := i

		task := func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			buffer := bytes.NewBuffer(make([]byte, 0, 128*(batchEnd-batchStart)))
			writer := csv.NewWriter(buffer)
			for _, f := range facts[batchStart:batchEnd] {
				row := domain.NewFactRow(f)
				if err := writer.Write(row.ToCSVRow()); err != nil {
					return err
				}
			}
			writer.Flush()
			if err := writer.Error(); err != nil {
				return err
			}
			batches[slot] = buffer
			return nil
		}
		if err := pool.Submit(task); err != nil {
			break
		}
	}
	if err := pool.Wait(); err != nil {
		return Export{}, fmt.Errorf("error processing batch: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return Export{}, err
	}

	out := bytes.NewBuffer(make([]byte, 0, 128*(len(facts)+1)))
	header := csv.NewWriter(out)
	if err := header.Write(domain.CSVHeaders()); err != nil {
		return Export{}, err
	}
	header.Flush()
	for _, b := range batches {
		if b != nil {
			out.Write(b.Bytes())
		}
	}

	s.logger.Info("facts exported",
		"job", job.ID(),
		"rows", len(facts),
		"batches", numBatches,
		"duration", time.Since(start),
	)
	return Export{Job: job, Data: out.Bytes(), Rows: len(facts)}, nil
}
