package service

import (
	"errors"
	"io/fs"
	"math"
	"strings"
	"sync"
	"unicode"

	"github.com/Aashish23092/expense-insights/utils"
	"github.com/jbrukh/bayesian"
)

const (
	LabelInvoice  bayesian.Class = "Invoice"
	LabelContract bayesian.Class = "Contract"
)

// seed documents used when no trained model file is available
var classifierSeed = map[bayesian.Class][]string{
	LabelInvoice: {
		"tax invoice invoice no date issued vendor grand total amount payable gst",
		"bill to issued to employee id qty rate amount subtotal cgst sgst grand total",
		"receipt cash memo item price quantity total paid thank you visit again",
		"invoice number due date payment terms total due balance amount rupees",
		"restaurant bill table no food beverage service charge grand total",
		"taxi fare trip invoice pickup drop distance total fare paid",
	},
	LabelContract: {
		"this agreement is entered into by and between the parties hereinafter referred",
		"whereas the party of the first part agrees terms and conditions governing law",
		"the contractor shall indemnify hold harmless termination clause notice period",
		"confidentiality obligations shall survive termination of this agreement",
		"in witness whereof the parties have executed this contract signature witness",
		"scope of work deliverables milestones effective date term renewal arbitration",
	},
}

// DocumentClassifier labels a document as an invoice or a contract with a
// naive Bayes model.
type DocumentClassifier struct {
	mu      sync.Mutex
	model   *bayesian.Classifier
	classes []bayesian.Class
}

// NewDocumentClassifier loads the model at modelPath. When the file does not
// exist the seed corpus is used and, if modelPath is set, written there.
func NewDocumentClassifier(modelPath string) (*DocumentClassifier, error) {
	if modelPath != "" {
		model, err := bayesian.NewClassifierFromFile(modelPath)
		if err == nil {
			utils.LogInfo("Document classifier loaded", map[string]interface{}{"path": modelPath})
			return &DocumentClassifier{model: model, classes: model.Classes}, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	dc := newSeededClassifier()
	if modelPath != "" {
		if err := dc.model.WriteToFile(modelPath); err != nil {
			utils.LogWarn("Could not persist document classifier", map[string]interface{}{"path": modelPath, "error": err.Error()})
		}
	}
	return dc, nil
}

func newSeededClassifier() *DocumentClassifier {
	classes := []bayesian.Class{LabelInvoice, LabelContract}
	model := bayesian.NewClassifier(classes...)
	for _, class := range classes {
		for _, doc := range classifierSeed[class] {
			model.Learn(tokenize(doc), class)
		}
	}
	return &DocumentClassifier{model: model, classes: classes}
}

// Classify returns the most likely label and the per-label probabilities.
func (dc *DocumentClassifier) Classify(text string) (string, map[string]float64) {
	dc.mu.Lock()
	defer dc.mu.Unlock()

	scores, best, _ := dc.model.LogScores(tokenize(text))
	return string(dc.classes[best]), normalizeLogScores(dc.classes, scores)
}

// normalizeLogScores turns log-likelihoods into probabilities summing to 1.
func normalizeLogScores(classes []bayesian.Class, scores []float64) map[string]float64 {
	top := math.Inf(-1)
	for _, s := range scores {
		if s > top {
			top = s
		}
	}
	var sum float64
	exp := make([]float64, len(scores))
	for i, s := range scores {
		exp[i] = math.Exp(s - top)
		sum += exp[i]
	}
	out := make(map[string]float64, len(scores))
	for i, class := range classes {
		out[string(class)] = exp[i] / sum
	}
	return out
}

func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	tokens := fields[:0]
	for _, f := range fields {
		if len(f) > 1 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
