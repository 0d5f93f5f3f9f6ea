package publicapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	departmentprovider "huntflow-sync/lib/dicts/department"
	huntflowhandler "huntflow-sync/lib/huntflow"
	vacancyhandler "huntflow-sync/lib/vacancy"
	apimodels "huntflow-sync/models/api"
	hfapimodels "huntflow-sync/models/api/huntflow"
	vacancyapimodels "huntflow-sync/models/api/vacancy"
	dbmodels "huntflow-sync/models/db"
)

type lookupStub struct {
	huntflowhandler.Provider
}

func (lookupStub) GetVacancy(_ context.Context, id int) huntflowhandler.VacancyLookup {
	if id == 404 {
		return huntflowhandler.VacancyLookup{Error: "запрос в HuntFlow завершился с кодом 404"}
	}
	return huntflowhandler.VacancyLookup{Success: true, Data: &hfapimodels.Vacancy{ID: id, Position: "Аналитик"}}
}

type vacancyListStub struct {
	vacancyhandler.Provider
	err error
}

func (s vacancyListStub) ListPublished() ([]vacancyapimodels.VacancyView, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []vacancyapimodels.VacancyView{{HuntflowID: 7, Name: "Аналитик"}}, nil
}

type departmentStub struct{}

func (departmentStub) List() ([]dbmodels.Department, error) {
	return []dbmodels.Department{
		{ID: 1, Name: "Компания", Lft: 1, Rgt: 4},
		{ID: 2, Name: "Разработка", Lft: 2, Rgt: 3},
	}, nil
}

func getApp() *fiber.App {
	huntflowhandler.Instance = lookupStub{}
	vacancyhandler.Instance = vacancyListStub{}
	departmentprovider.Instance = departmentStub{}
	app := fiber.New()
	InitPublicVacancyApiRouters(app)
	InitPublicDepartmentApiRouters(app)
	return app
}

func doGet(t *testing.T, app *fiber.App, path string, out interface{}) int {
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
	require.Nil(t, err)
	data, err := io.ReadAll(resp.Body)
	require.Nil(t, err)
	require.Nil(t, json.Unmarshal(data, out))
	return resp.StatusCode
}

func TestPublicVacancyApi(t *testing.T) {
	t.Run(`lookup success check`, func(t *testing.T) {
		result := huntflowhandler.VacancyLookup{}
		code := doGet(t, getApp(), "/vacancies/5", &result)
		require.Equal(t, fiber.StatusOK, code)
		require.True(t, result.Success)
		require.Equal(t, "Аналитик", result.Data.Position)
	})

	t.Run(`lookup failure check`, func(t *testing.T) {
		result := huntflowhandler.VacancyLookup{}
		code := doGet(t, getApp(), "/vacancies/404", &result)
		require.Equal(t, fiber.StatusOK, code)
		require.False(t, result.Success)
		require.NotEmpty(t, result.Error)
	})

	t.Run(`bad id check`, func(t *testing.T) {
		result := huntflowhandler.VacancyLookup{}
		code := doGet(t, getApp(), "/vacancies/abc", &result)
		require.Equal(t, fiber.StatusBadRequest, code)
		require.False(t, result.Success)
	})

	t.Run(`published list check`, func(t *testing.T) {
		result := apimodels.Response{}
		code := doGet(t, getApp(), "/vacancies", &result)
		require.Equal(t, fiber.StatusOK, code)
		require.Equal(t, "success", result.Status)
		require.Len(t, result.Data, 1)
	})

	t.Run(`published list error check`, func(t *testing.T) {
		app := getApp()
		vacancyhandler.Instance = vacancyListStub{err: errors.New("db down")}
		result := apimodels.Response{}
		code := doGet(t, app, "/vacancies", &result)
		require.Equal(t, fiber.StatusInternalServerError, code)
		require.Equal(t, "fail", result.Status)
	})
}

func TestPublicDepartmentApi(t *testing.T) {
	t.Run(`list check`, func(t *testing.T) {
		result := apimodels.Response{}
		code := doGet(t, getApp(), "/departments", &result)
		require.Equal(t, fiber.StatusOK, code)
		require.Len(t, result.Data, 2)
	})

	t.Run(`tree check`, func(t *testing.T) {
		result := apimodels.Response{}
		code := doGet(t, getApp(), "/departments/tree", &result)
		require.Equal(t, fiber.StatusOK, code)
		tree, ok := result.Data.([]interface{})
		require.True(t, ok)
		require.Len(t, tree, 1)
		root := tree[0].(map[string]interface{})
		require.Len(t, root["sub_units"], 1)
	})
}
