package huntflowworker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	huntflowhandler "huntflow-sync/lib/huntflow"
	"huntflow-sync/lib/utils/lock"
	hfapimodels "huntflow-sync/models/api/huntflow"
)

type handlerStub struct {
	stages []huntflowhandler.Stage
	// сколько раз этап находит работу
	pending map[huntflowhandler.Stage]int
}

func (h *handlerStub) RunStage(_ context.Context, stage huntflowhandler.Stage) huntflowhandler.StageResult {
	h.stages = append(h.stages, stage)
	result := huntflowhandler.StageResult{Stage: stage}
	if h.pending[stage] > 0 {
		h.pending[stage]--
		result.Fetched = 1
	}
	return result
}

func (h *handlerStub) FetchVacancies(context.Context) []hfapimodels.Vacancy {
	return nil
}

func (h *handlerStub) ImportVacancies(ctx context.Context) huntflowhandler.StageResult {
	return h.RunStage(ctx, huntflowhandler.StageVacancies)
}

func (h *handlerStub) ImportStructure(ctx context.Context) huntflowhandler.StageResult {
	return h.RunStage(ctx, huntflowhandler.StageStructure)
}

func (h *handlerStub) RefreshVacancyStates(ctx context.Context) huntflowhandler.StageResult {
	return h.RunStage(ctx, huntflowhandler.StageVacancyStates)
}

func (h *handlerStub) SubmitApplicant(ctx context.Context) huntflowhandler.StageResult {
	return h.RunStage(ctx, huntflowhandler.StageApplicants)
}

func (h *handlerStub) LinkApplicant(ctx context.Context) huntflowhandler.StageResult {
	return h.RunStage(ctx, huntflowhandler.StageLinks)
}

func (h *handlerStub) PollStatuses(ctx context.Context) huntflowhandler.StageResult {
	return h.RunStage(ctx, huntflowhandler.StageStatuses)
}

func (h *handlerStub) GetVacancy(context.Context, int) huntflowhandler.VacancyLookup {
	return huntflowhandler.VacancyLookup{}
}

func TestWorker(t *testing.T) {
	t.Run(`catalog stages order check`, func(t *testing.T) {
		handler := &handlerStub{}
		i := impl{handler: handler, locker: lock.NewLocal(), lockTTL: time.Minute}
		i.syncCatalog(context.TODO())
		require.Equal(t, CatalogStages, handler.stages)
	})

	t.Run(`referral stages drained check`, func(t *testing.T) {
		handler := &handlerStub{pending: map[huntflowhandler.Stage]int{
			huntflowhandler.StageApplicants: 2,
			huntflowhandler.StageStatuses:   5,
		}}
		i := impl{handler: handler, locker: lock.NewLocal(), lockTTL: time.Minute}
		i.syncReferrals(context.TODO())
		require.Equal(t, []huntflowhandler.Stage{
			huntflowhandler.StageApplicants,
			huntflowhandler.StageApplicants,
			huntflowhandler.StageApplicants,
			huntflowhandler.StageLinks,
			huntflowhandler.StageStatuses,
		}, handler.stages)
	})

	t.Run(`busy stage skipped check`, func(t *testing.T) {
		handler := &handlerStub{}
		locker := lock.NewLocal()
		var ran bool
		_, err := locker.TryRun(context.TODO(), "stage:"+string(huntflowhandler.StageStatuses), time.Minute, func() error {
			_, ran, _ = RunLocked(context.TODO(), locker, handler, huntflowhandler.StageStatuses, time.Minute)
			return nil
		})
		require.Nil(t, err)
		require.False(t, ran)
		require.Empty(t, handler.stages)
	})
}
