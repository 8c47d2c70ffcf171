package model

import (
	"github.com/nlpodyssey/spago/pkg/mat/rand"
	"github.com/nlpodyssey/spago/pkg/ml/ag"
	"github.com/nlpodyssey/spago/pkg/ml/initializers"
	"github.com/nlpodyssey/spago/pkg/ml/nn"
	"github.com/nlpodyssey/spago/pkg/ml/nn/linear"
)

var (
	_ nn.Model     = &Classifier{}
	_ nn.Processor = &ClassifierProcessor{}
)

// Classifier is a feed-forward classifier over encoded feature vectors: one
// hidden layer with a ReLU, then a linear projection to class logits. The
// input dimension must equal the feature contract length.
type Classifier struct {
	ClassifierConfig
	Hidden *linear.Model
	Output *linear.Model
}

type ClassifierConfig struct {
	NumFeatures int
	HiddenSize  int
	NumClasses  int
}

func NewClassifier(config ClassifierConfig) *Classifier {
	return &Classifier{
		ClassifierConfig: config,
		Hidden:           linear.New(config.NumFeatures, config.HiddenSize),
		Output:           linear.New(config.HiddenSize, config.NumClasses),
	}
}

func (m *Classifier) Init(generator *rand.LockedRand) {
	initializers.XavierUniform(m.Hidden.W.Value(), initializers.Gain(ag.OpReLU), generator)
	initializers.XavierUniform(m.Output.W.Value(), initializers.Gain(ag.OpIdentity), generator)
}

type ClassifierProcessor struct {
	nn.BaseProcessor
	hiddenProcessor nn.Processor
	outputProcessor nn.Processor
}

func (m *Classifier) NewProc(ctx nn.Context) nn.Processor {
	return &ClassifierProcessor{
		BaseProcessor: nn.BaseProcessor{
			Model:             m,
			Mode:              ctx.Mode,
			Graph:             ctx.Graph,
			FullSeqProcessing: false,
		},
		hiddenProcessor: m.Hidden.NewProc(ctx),
		outputProcessor: m.Output.NewProc(ctx),
	}
}

// Forward maps feature vectors to unnormalized class logits.
func (p *ClassifierProcessor) Forward(xs ...ag.Node) []ag.Node {
	g := p.Graph
	hidden := p.hiddenProcessor.Forward(xs...)
	for i := range hidden {
		hidden[i] = g.ReLU(hidden[i])
	}
	return p.outputProcessor.Forward(hidden...)
}
