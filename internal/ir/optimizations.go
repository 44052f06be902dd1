package ir

// This file contains the pass contract and the pipeline that drives it.
// Every rewriting pass is local: one forward scan per block, each original
// instruction inspected once, no iteration to a fixpoint.

import (
	"fmt"
	"time"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("localopts.ir")

// Pass is the common surface of every optimization or analysis pass
type Pass interface {
	Name() string
	Description() string
	// PreservesAnalyses reports whether cached analysis results stay
	// valid after the pass has run
	PreservesAnalyses() bool
}

// FunctionPass runs on one function at a time
type FunctionPass interface {
	Pass
	RunOnFunction(fn *Function) bool // Returns true if changes were made
}

// ModulePass runs once on the whole module
type ModulePass interface {
	Pass
	RunOnModule(m *Module) bool // Returns true if changes were made
}

// runOnBlocks visits every instruction of fn front to back. The next
// instruction is captured before visit runs, so visit may replace or
// erase the current one and anything it inserts is not revisited.
func runOnBlocks(fn *Function, visit func(inst *Instruction) bool) bool {
	changed := false
	for _, b := range fn.Blocks() {
		for inst := b.First(); inst != nil; {
			next := inst.Next()
			if visit(inst) {
				changed = true
			}
			inst = next
		}
	}
	return changed
}

// binaryOperands returns both operands of a binary instruction whose
// operand types agree with each other and with the result.
func binaryOperands(inst *Instruction) (Value, Value, bool) {
	if !inst.Opcode().IsBinary() || inst.NumOperands() != 2 {
		return nil, nil, false
	}
	a, b := inst.Operand(0), inst.Operand(1)
	if a == nil || b == nil || a.Type() != b.Type() || a.Type() != inst.Type() {
		return nil, nil, false
	}
	return a, b, true
}

// DefaultPasses is the rewriting pipeline used when nothing else is configured
var DefaultPasses = []string{
	AlgebraicIdentityName,
	StrengthReductionName,
	ConstFoldName,
}

// Pipeline manages the sequence of passes run over a module
type Pipeline struct {
	passes []Pass
	log    commonlog.Logger
}

// PassResult records the outcome of one pass over the module
type PassResult struct {
	Pass                string
	Changed             bool
	InvalidatesAnalyses bool
	Duration            time.Duration
}

// PipelineReport is the ordered list of pass outcomes
type PipelineReport struct {
	Results []PassResult
}

// Changed reports whether any pass modified the module
func (r PipelineReport) Changed() bool {
	for _, res := range r.Results {
		if res.Changed {
			return true
		}
	}
	return false
}

// NewPipeline resolves the named passes through reg, in order
func NewPipeline(reg *Registry, names ...string) (*Pipeline, error) {
	pipeline := &Pipeline{log: commonlog.GetLogger("localopts.pipeline")}
	for _, name := range names {
		pass, err := reg.Lookup(name)
		if err != nil {
			return nil, err
		}
		pipeline.AddPass(pass)
	}
	return pipeline, nil
}

// AddPass appends a pass to the pipeline
func (p *Pipeline) AddPass(pass Pass) {
	p.passes = append(p.passes, pass)
}

// Passes returns the passes in execution order
func (p *Pipeline) Passes() []Pass { return p.passes }

// Run executes all passes over m, function passes over every defined
// function and module passes once.
func (p *Pipeline) Run(m *Module) PipelineReport {
	p.log.Infof("running %d passes over module %s", len(p.passes), m.Name)

	var report PipelineReport
	for _, pass := range p.passes {
		start := time.Now()
		changed := false

		switch pass := pass.(type) {
		case FunctionPass:
			for _, fn := range m.Functions() {
				if fn.IsDeclaration() {
					continue
				}
				if pass.RunOnFunction(fn) {
					p.log.Debugf("%s changed @%s", pass.Name(), fn.Name)
					changed = true
				}
			}
		case ModulePass:
			changed = pass.RunOnModule(m)
		default:
			panic(fmt.Sprintf("localopts: pass %s is neither a function nor a module pass", pass.Name()))
		}

		result := PassResult{
			Pass:                pass.Name(),
			Changed:             changed,
			InvalidatesAnalyses: changed && !pass.PreservesAnalyses(),
			Duration:            time.Since(start),
		}
		if changed {
			p.log.Infof("%s: applied optimizations", pass.Name())
		} else {
			p.log.Infof("%s: no changes needed", pass.Name())
		}
		report.Results = append(report.Results, result)
	}
	return report
}
