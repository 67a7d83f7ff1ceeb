package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/domain"
	"github.com/spf13/pflag"
)

// enumValue is a string flag limited to a fixed set of values. parse, when
// set, maps aliases onto the canonical value.
type enumValue struct {
	target  *string
	allowed []string
	parse   func(string) (string, bool)
}

var _ pflag.Value = (*enumValue)(nil)

func (e *enumValue) String() string {
	if e.target == nil {
		return ""
	}
	return *e.target
}

func (e *enumValue) Set(s string) error {
	s = strings.TrimSpace(s)
	if e.parse != nil {
		if v, ok := e.parse(s); ok {
			*e.target = v
			return nil
		}
	} else if s == "" || slices.Contains(e.allowed, s) {
		*e.target = s
		return nil
	}
	return fmt.Errorf("valor inválido %q: usa %s", s, strings.Join(e.allowed, " | "))
}

func (e *enumValue) Type() string { return "string" }

func enumFlag(fs *pflag.FlagSet, p *string, name, value, usage string, allowed ...string) {
	*p = value
	fs.Var(&enumValue{target: p, allowed: allowed}, name, usage+" ("+strings.Join(allowed, " | ")+")")
}

func roleFlag(fs *pflag.FlagSet, p *string, name, value, usage string) {
	*p = value
	allowed := []string{
		string(domain.RoleClient), string(domain.RoleAdvisor), string(domain.RoleSupport),
		string(domain.RoleDeveloper), string(domain.RoleSuperAdmin),
	}
	fs.Var(&enumValue{
		target:  p,
		allowed: allowed,
		parse: func(s string) (string, bool) {
			r, ok := domain.ParseRole(s)
			return string(r), ok
		},
	}, name, usage+" ("+strings.Join(allowed, " | ")+")")
}

var (
	projectStatuses = []string{
		string(domain.ProjectPending), string(domain.ProjectInProgress),
		string(domain.ProjectPaused), string(domain.ProjectCompleted),
	}
	taskStatuses = []string{
		string(domain.TaskPending), string(domain.TaskInProgress), string(domain.TaskCompleted),
	}
	taskPriorities = []string{
		string(domain.PriorityLow), string(domain.PriorityMedium), string(domain.PriorityHigh),
	}
	deliverableTypes = []string{
		string(domain.DeliverableDocument), string(domain.DeliverableCode), string(domain.DeliverableDesign),
		string(domain.DeliverableManual), string(domain.DeliverableOther),
	}
	deliverableStatuses = []string{
		string(domain.DeliverablePending), string(domain.DeliverableInReview), string(domain.DeliverableApproved),
		string(domain.DeliverableRejected), string(domain.DeliverableInCorrection),
	}
)
