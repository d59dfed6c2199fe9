package chat

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/m-mizutani/goerr/v2"

	"github.com/agente-ai/agente/pkg/model"
	"github.com/agente-ai/agente/pkg/utils/logging"
)

//go:embed prompt/answer.md
var answerPromptRaw string

var answerPromptTmpl = template.Must(template.New("answer").Parse(answerPromptRaw))

// Ask answers a question using the documents nearest to its embedding plus
// the sales history of any customers mentioned in the question. For the
// customer role the access filter runs inside the store query, so private
// documents never reach the context. The provider's generated text is
// returned verbatim.
func (u *UseCase) Ask(ctx context.Context, question string, role model.Role) (string, error) {
	vec, err := u.embedder.Embed(ctx, question)
	if err != nil {
		return "", goerr.Wrap(err, "failed to embed question")
	}
	if len(vec) == 0 {
		return "", goerr.New("embedding provider returned no vector for question")
	}

	docs, err := u.repo.SearchDocuments(ctx, vec, maxDocuments, role == model.RoleCustomer)
	if err != nil {
		return "", goerr.Wrap(err, "failed to search documents")
	}

	sales, err := u.mentionedSales(ctx, question)
	if err != nil {
		return "", err
	}

	systemPrompt, err := u.buildPrompt(ctx, docs, sales)
	if err != nil {
		return "", err
	}

	answer, err := u.llm.Complete(ctx, systemPrompt, question)
	if err != nil {
		return "", goerr.Wrap(err, "completion provider failed")
	}

	return answer, nil
}

// mentionedSales returns the most recent sales of customers whose names the
// matcher finds in the question
func (u *UseCase) mentionedSales(ctx context.Context, question string) ([]*model.SaleRecord, error) {
	names, err := u.repo.ListCustomerNames(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list customer names")
	}

	mentioned := u.matcher.Match(question, names)
	if len(mentioned) == 0 {
		return nil, nil
	}

	sales, err := u.repo.ListSalesByCustomers(ctx, mentioned, maxSales)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch sales history")
	}

	return sales, nil
}

func (u *UseCase) buildPrompt(ctx context.Context, docs []*model.Document, sales []*model.SaleRecord) (string, error) {
	var sb strings.Builder

	sb.WriteString("Products:\n")
	for _, doc := range docs {
		fmt.Fprintf(&sb, "- %s: %s\n", doc.Name, doc.Description)
	}

	if len(sales) > 0 {
		// resolve each sale's owning document name, memoized per call
		productNames := make(map[model.DocumentID]string)

		sb.WriteString("\nSales History:\n")
		for _, sale := range sales {
			name, ok := productNames[sale.ProductID]
			if !ok {
				name = u.productName(ctx, sale.ProductID)
				productNames[sale.ProductID] = name
			}
			fmt.Fprintf(&sb, "- %s bought %dx %s for $%.2f on %s\n",
				sale.CustomerName, sale.Quantity, name, sale.PriceTotal,
				sale.SaleDate.Format("2006-01-02"))
		}
	}

	var buf bytes.Buffer
	if err := answerPromptTmpl.Execute(&buf, map[string]any{
		"Context": sb.String(),
	}); err != nil {
		return "", goerr.Wrap(err, "failed to execute answer prompt template")
	}

	return buf.String(), nil
}

func (u *UseCase) productName(ctx context.Context, id model.DocumentID) string {
	doc, err := u.repo.GetDocument(ctx, id)
	if err != nil {
		// A sale referencing a missing document is an admin-side anomaly,
		// not a reason to fail the answer
		logging.From(ctx).Warn("sale references unknown product", "product_id", id, "error", err)
		return model.DefaultProductName
	}
	return doc.Name
}
