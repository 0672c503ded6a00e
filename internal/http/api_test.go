package handlers_test

import (
	"math"
	"net/http"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fangji/internal/domain"
)

func TestListPaginationAndCategory(t *testing.T) {
	a := newApp(t, true, 0)

	var res domain.ListResult
	status := a.doJSON(t, "GET", "/api/prescriptions?page=1&limit=2", nil, &res)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, res.Prescriptions, 2)
	assert.Equal(t, 5, res.Total)
	assert.Equal(t, 1, res.Page)
	assert.Equal(t, 2, res.Limit)
	assert.Equal(t, 3, res.Pages)

	status = a.doJSON(t, "GET", "/api/prescriptions?page=3&limit=2", nil, &res)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, res.Prescriptions, 1)

	status = a.doJSON(t, "GET", "/api/prescriptions?category="+url.QueryEscape("清热解毒类"), nil, &res)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, res.Prescriptions, 1)
	assert.Equal(t, "银翘散", res.Prescriptions[0].Name)
	assert.Equal(t, 1, res.Total)
	assert.Equal(t, 20, res.Limit)

	// out of range values fall back to the defaults
	status = a.doJSON(t, "GET", "/api/prescriptions?page=-4&limit=0", nil, &res)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, res.Page)
	assert.Equal(t, 20, res.Limit)
}

func TestFarOutPageIsEmpty(t *testing.T) {
	a := newApp(t, true, 0)
	page := strconv.Itoa(math.MaxInt/2 + 1)

	var res domain.ListResult
	status := a.doJSON(t, "GET", "/api/prescriptions?limit=4&page="+page, nil, &res)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, res.Prescriptions)
	assert.Equal(t, 5, res.Total)
	assert.Equal(t, 2, res.Pages)
}

func TestNonNumericPagingIsRejected(t *testing.T) {
	a := newApp(t, true, 0)

	for _, u := range []string{
		"/api/prescriptions?page=abc",
		"/api/prescriptions?limit=1.5",
		"/api/prescriptions/search?q=x&page=two",
	} {
		var e errBody
		status := a.doJSON(t, "GET", u, nil, &e)
		assert.Equal(t, http.StatusBadRequest, status, u)
		assert.NotEmpty(t, e.Error, u)
	}
}

func TestGetPrescription(t *testing.T) {
	a := newApp(t, true, 0)

	var p domain.Prescription
	status := a.doJSON(t, "GET", "/api/prescriptions/1", nil, &p)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "银翘散", p.Name)
	assert.Equal(t, "", p.Symptoms)
	assert.NotEmpty(t, p.CreatedAt)

	for _, id := range []string{"999", "abc", "0", "-1"} {
		var e errBody
		status = a.doJSON(t, "GET", "/api/prescriptions/"+id, nil, &e)
		assert.Equal(t, http.StatusNotFound, status, id)
		assert.Equal(t, "药方不存在", e.Error, id)
	}
}

func TestCreateUpdateDeleteFlow(t *testing.T) {
	a := newApp(t, false, 0)

	var created struct {
		ID      int64  `json:"id"`
		Message string `json:"message"`
	}
	status := a.doJSON(t, "POST", "/api/prescriptions", map[string]any{
		"name": "桂枝汤", "efficacy": "解肌发表，调和营卫", "ingredients": "桂枝、芍药、甘草、生姜、大枣",
		"category": "解表类", "symptoms": "恶风 汗出",
	}, &created)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "药方创建成功", created.Message)
	require.Positive(t, created.ID)
	path := "/api/prescriptions/" + itoa(created.ID)

	var before domain.Prescription
	require.Equal(t, http.StatusOK, a.doJSON(t, "GET", path, nil, &before))
	assert.Equal(t, "桂枝汤", before.Name)
	assert.Equal(t, "恶风 汗出", before.Symptoms)
	assert.Equal(t, "", before.Usage)

	a.clock.Advance(time.Second)
	var msg struct {
		Message string `json:"message"`
	}
	status = a.doJSON(t, "PUT", path, map[string]any{"usage": "水煎服", "source": nil, "ignored": 1}, &msg)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "药方更新成功", msg.Message)

	var after domain.Prescription
	require.Equal(t, http.StatusOK, a.doJSON(t, "GET", path, nil, &after))
	assert.Equal(t, "水煎服", after.Usage)
	assert.Equal(t, "桂枝汤", after.Name)
	assert.Equal(t, "解表类", after.Category)
	assert.Equal(t, before.CreatedAt, after.CreatedAt)
	assert.Greater(t, after.UpdatedAt, before.UpdatedAt)

	status = a.doJSON(t, "DELETE", path, nil, &msg)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "药方删除成功", msg.Message)

	var e errBody
	assert.Equal(t, http.StatusNotFound, a.doJSON(t, "GET", path, nil, &e))
	assert.Equal(t, http.StatusNotFound, a.doJSON(t, "DELETE", path, nil, &e))
	assert.Equal(t, http.StatusNotFound, a.doJSON(t, "PUT", path, map[string]any{"name": "x"}, &e))
	assert.Equal(t, "药方不存在", e.Error)
}

func TestCreateValidation(t *testing.T) {
	a := newApp(t, false, 0)

	var e errBody
	status := a.doJSON(t, "POST", "/api/prescriptions", map[string]any{"efficacy": "x"}, &e)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "name 字段是必需的", e.Error)

	status = a.doJSON(t, "POST", "/api/prescriptions", map[string]any{"name": "x", "efficacy": ""}, &e)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "efficacy 字段是必需的", e.Error)

	status = a.doJSON(t, "POST", "/api/prescriptions", "{not json", &e)
	assert.Equal(t, http.StatusBadRequest, status)

	var stats domain.Stats
	a.doJSON(t, "GET", "/api/stats", nil, &stats)
	assert.Zero(t, stats.TotalPrescriptions, "rejected creates must not persist")
}

func TestUpdateValidation(t *testing.T) {
	a := newApp(t, true, 0)

	var e errBody
	status := a.doJSON(t, "PUT", "/api/prescriptions/1", map[string]any{"name": ""}, &e)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "name 字段是必需的", e.Error)

	status = a.doJSON(t, "PUT", "/api/prescriptions/1", `["name"]`, &e)
	assert.Equal(t, http.StatusBadRequest, status)

	// unknown fields only: success, nothing changes
	var msg struct {
		Message string `json:"message"`
	}
	status = a.doJSON(t, "PUT", "/api/prescriptions/1", map[string]any{"colour": "red"}, &msg)
	assert.Equal(t, http.StatusOK, status)

	var p domain.Prescription
	a.doJSON(t, "GET", "/api/prescriptions/1", nil, &p)
	assert.Equal(t, "银翘散", p.Name)
}

func TestCategoriesAndStats(t *testing.T) {
	a := newApp(t, true, 0)

	var cats []string
	require.Equal(t, http.StatusOK, a.doJSON(t, "GET", "/api/categories", nil, &cats))
	assert.Len(t, cats, 5)
	assert.Contains(t, cats, "补益类")

	var stats domain.Stats
	require.Equal(t, http.StatusOK, a.doJSON(t, "GET", "/api/stats", nil, &stats))
	assert.Equal(t, 5, stats.TotalPrescriptions)
	assert.Len(t, stats.CategoryStats, 5)
	for _, s := range stats.CategoryStats {
		assert.Equal(t, 1, s.Count)
	}
}

func TestUnknownAPIRouteIsJSON404(t *testing.T) {
	a := newApp(t, false, 0)

	var e errBody
	status := a.doJSON(t, "GET", "/api/nothing-here", nil, &e)
	assert.Equal(t, http.StatusNotFound, status)
	assert.NotEmpty(t, e.Error)
}
