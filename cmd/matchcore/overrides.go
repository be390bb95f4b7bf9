package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dom/matchcore/internal/domain"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func parsePhase(s string) (domain.Phase, error) {
	switch domain.Phase(s) {
	case domain.Phase1, domain.Phase2, domain.Phase3:
		return domain.Phase(s), nil
	default:
		return "", fmt.Errorf("unknown phase %q (want phase1, phase2, or phase3)", s)
	}
}

// overrideFlags holds the pflag-backed values run/rerun accept; empty
// values mean "use the pipeline default" and are omitted from the
// resulting Overrides.
type overrideFlags struct {
	teamSize   int
	capacities []string
	weights    []string
	randomSeed int64
}

func registerOverrideFlags(cmd *cobra.Command, f *overrideFlags) {
	cmd.Flags().IntVar(&f.teamSize, "team-size", 0, "override the default team size")
	cmd.Flags().StringSliceVar(&f.capacities, "capacity", nil, "per-problem team count override, problemID=count (repeatable)")
	cmd.Flags().StringSliceVar(&f.weights, "weight", nil, "cost weight override, name=value (repeatable): skill-gap, role-alignment, motivation-similarity, ambiguity-fit, workload-fit")
	cmd.Flags().Int64Var(&f.randomSeed, "random-seed", 0, "random seed override; no phase reads it, and Phase 2 seeding is deterministic")
}

func (f *overrideFlags) build() (*domain.Overrides, error) {
	if f.teamSize == 0 && len(f.capacities) == 0 && len(f.weights) == 0 && f.randomSeed == 0 {
		return nil, nil
	}

	overrides := &domain.Overrides{}
	if f.teamSize > 0 {
		overrides.TeamSize = &f.teamSize
	}
	if f.randomSeed != 0 {
		overrides.RandomSeed = &f.randomSeed
	}

	if len(f.capacities) > 0 {
		capacities := make(map[uuid.UUID]int, len(f.capacities))
		for _, entry := range f.capacities {
			id, count, err := splitKV(entry)
			if err != nil {
				return nil, fmt.Errorf("--capacity %q: %w", entry, err)
			}
			problemID, err := uuid.Parse(id)
			if err != nil {
				return nil, fmt.Errorf("--capacity %q: invalid problem id: %w", entry, err)
			}
			n, err := strconv.Atoi(count)
			if err != nil {
				return nil, fmt.Errorf("--capacity %q: invalid count: %w", entry, err)
			}
			capacities[problemID] = n
		}
		overrides.PerProblemCapacity = capacities
	}

	if len(f.weights) > 0 {
		w := &domain.WeightOverrides{}
		for _, entry := range f.weights {
			name, value, err := splitKV(entry)
			if err != nil {
				return nil, fmt.Errorf("--weight %q: %w", entry, err)
			}
			v, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return nil, fmt.Errorf("--weight %q: invalid value: %w", entry, err)
			}
			switch name {
			case "skill-gap":
				w.SkillGap = v
			case "role-alignment":
				w.RoleAlignment = v
			case "motivation-similarity":
				w.MotivationSimilarity = v
			case "ambiguity-fit":
				w.AmbiguityFit = v
			case "workload-fit":
				w.WorkloadFit = v
			default:
				return nil, fmt.Errorf("--weight %q: unknown weight name %q", entry, name)
			}
		}
		overrides.Weights = w
	}

	return overrides, nil
}

func splitKV(entry string) (string, string, error) {
	parts := strings.SplitN(entry, "=", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("expected key=value")
	}
	return parts[0], parts[1], nil
}
