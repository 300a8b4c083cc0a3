package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/nortis-app/nortis-backend/internal/core/domain"
	portssvc "github.com/nortis-app/nortis-backend/internal/core/ports/services"
	"github.com/nortis-app/nortis-backend/internal/utils"
)

// topOutstanding is how many unpaid obligations are named in the prompt.
const topOutstanding = 3

// InsightService builds a structured financial summary and asks the opaque
// text-generation collaborator for a short natural-language comment. The
// returned text is passed through untouched.
type InsightService struct {
	ledger    portssvc.ObligationReaderSvc
	income    portssvc.IncomeSvcFacade
	generator portssvc.TextGenerator
	loc       *time.Location
	now       func() time.Time
}

// NewInsightService creates a new InsightService.
func NewInsightService(ledger portssvc.ObligationReaderSvc, income portssvc.IncomeSvcFacade, generator portssvc.TextGenerator, loc *time.Location) *InsightService {
	return &InsightService{
		ledger:    ledger,
		income:    income,
		generator: generator,
		loc:       loc,
		now:       time.Now,
	}
}

// GenerateInsight summarizes the current period and asks the generator for a
// comment in Brazilian Portuguese.
func (s *InsightService) GenerateInsight(ctx context.Context, userID string) (string, error) {
	period := domain.PeriodOf(s.now().In(s.loc))

	summary, err := s.ledger.ComputeSummary(ctx, userID, period)
	if err != nil {
		return "", fmt.Errorf("failed to summarize period %s: %w", period, err)
	}
	entries, err := s.ledger.ProjectForPeriod(ctx, userID, period)
	if err != nil {
		return "", fmt.Errorf("failed to project period %s: %w", period, err)
	}

	prompt := buildInsightPrompt(summary, entries)
	insight, err := s.generator.GenerateText(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("text generation failed: %w", err)
	}
	return insight, nil
}

// buildInsightPrompt renders the structured numbers the generator sees: the
// period totals plus the top outstanding obligations by amount.
func buildInsightPrompt(summary domain.Summary, entries []domain.ProjectionEntry) string {
	outstanding := make([]domain.ProjectionEntry, 0, len(entries))
	for _, e := range entries {
		if !e.Paid {
			outstanding = append(outstanding, e)
		}
	}
	sort.SliceStable(outstanding, func(i, j int) bool {
		return outstanding[i].Amount.GreaterThan(outstanding[j].Amount)
	})
	if len(outstanding) > topOutstanding {
		outstanding = outstanding[:topOutstanding]
	}

	var bills strings.Builder
	for _, e := range outstanding {
		fmt.Fprintf(&bills, "- %s: %s\n", e.Name, utils.FormatBRL(e.Amount))
	}
	billsText := strings.TrimRight(bills.String(), "\n")
	if billsText == "" {
		billsText = "Nenhuma despesa a vencer."
	}

	projected := summary.TotalIncome.Sub(summary.TotalOutstanding).Sub(summary.TotalSettled)

	return fmt.Sprintf(`Você é um consultor de finanças pessoais com um tom amigável e encorajador.
Analise o resumo financeiro abaixo e escreva um insight prático em português do Brasil.

Instruções:
1. Comente o saldo previsto: elogie se for positivo, ofereça uma perspectiva construtiva se for negativo.
2. Destaque a maior despesa em aberto e sugira uma ação prática sobre ela.
3. Feche com um conselho positivo para o mês.
4. No máximo 3 ou 4 frases, sem saudações.

Resumo financeiro:
- Renda mensal total: %s
- Total de despesas a vencer: %s
- Saldo previsto após todas as despesas: %s
- Maiores despesas a vencer:
%s`,
		utils.FormatBRL(summary.TotalIncome),
		utils.FormatBRL(summary.TotalOutstanding),
		utils.FormatBRL(projected),
		billsText,
	)
}
