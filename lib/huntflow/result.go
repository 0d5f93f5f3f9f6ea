package huntflowhandler

import (
	"fmt"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Stage string

const (
	StageStructure     Stage = "structure"
	StageVacancies     Stage = "vacancies"
	StageVacancyStates Stage = "vacancy_states"
	StageApplicants    Stage = "applicants"
	StageLinks         Stage = "links"
	StageStatuses      Stage = "statuses"
)

var Stages = []Stage{
	StageStructure,
	StageVacancies,
	StageVacancyStates,
	StageApplicants,
	StageLinks,
	StageStatuses,
}

func ParseStage(value string) (Stage, error) {
	for _, stage := range Stages {
		if string(stage) == value {
			return stage, nil
		}
	}
	return "", errors.Errorf("неизвестный этап синхронизации: %v", value)
}

// StageResult итог выполнения этапа синхронизации
type StageResult struct {
	Stage    Stage          `json:"stage"`
	Fetched  int            `json:"fetched"`
	Inserted int            `json:"inserted"`
	Updated  int            `json:"updated"`
	Skipped  int            `json:"skipped"`
	Notified int            `json:"notified"`
	Failures []StageFailure `json:"failures,omitempty"`
}

type StageFailure struct {
	Ref    string `json:"ref"` // страница, ид кандидата или вакансии
	Reason string `json:"reason"`
}

func newResult(stage Stage) StageResult {
	return StageResult{
		Stage:    stage,
		Failures: []StageFailure{},
	}
}

func (r *StageResult) fail(logger *log.Entry, ref string, err error, msg string) {
	logger.
		WithField("ref", ref).
		WithError(err).
		Error(msg)
	r.Failures = append(r.Failures, StageFailure{
		Ref:    ref,
		Reason: fmt.Sprintf("%v: %v", msg, err),
	})
}

func (r StageResult) Failed() bool {
	return len(r.Failures) != 0
}

func (r StageResult) log(logger *log.Entry) {
	logger.
		WithField("fetched", r.Fetched).
		WithField("inserted", r.Inserted).
		WithField("updated", r.Updated).
		WithField("skipped", r.Skipped).
		WithField("notified", r.Notified).
		WithField("failures", len(r.Failures)).
		Info("этап синхронизации завершён")
}
