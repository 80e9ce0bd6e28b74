// SPDX-License-Identifier: AGPL-3.0-or-later

package output

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-githubactions"
)

// Sink publishes a report to the orchestrator. When GITHUB_OUTPUT is set the
// values go through the Actions output file; otherwise they are printed as
// key=value lines for local runs. A step summary is written only when
// GITHUB_STEP_SUMMARY is set. An empty report sets no outputs at all.
type Sink struct {
	action *githubactions.Action
	out    io.Writer
	getenv githubactions.GetenvFunc
	log    zerolog.Logger
}

// NewSink wires a Sink. out receives the key=value fallback; getenv decides
// which Actions channels are available.
func NewSink(action *githubactions.Action, out io.Writer, getenv githubactions.GetenvFunc, log zerolog.Logger) *Sink {
	return &Sink{action: action, out: out, getenv: getenv, log: log}
}

// Publish emits every output of the report, then the step summary.
func (s *Sink) Publish(rep *Report) error {
	outs, err := rep.Outputs()
	if err != nil {
		return fmt.Errorf("serializing outputs: %w", err)
	}
	if len(outs) == 0 {
		s.log.Info().Msg("nothing to report; no outputs set")
		return nil
	}

	if s.getenv("GITHUB_OUTPUT") != "" {
		for _, kv := range outs {
			s.action.SetOutput(kv.Key, kv.Value)
		}
	} else {
		for _, kv := range outs {
			fmt.Fprintf(s.out, "%s=%s\n", kv.Key, kv.Value)
		}
	}

	if s.getenv("GITHUB_STEP_SUMMARY") != "" {
		s.action.AddStepSummary(rep.StepSummary())
	}

	s.log.Info().
		Int("submodules", len(rep.Submodules)).
		Int("outputs", len(outs)).
		Msg("published results")
	return nil
}
