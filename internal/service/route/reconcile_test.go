package route

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uberhub/innovation-hub/backend/internal/model/facility"
	"github.com/uberhub/innovation-hub/backend/internal/service/ai"
)

func testOffer() offer {
	return newOffer([]facility.Facility{
		{Name: "Alfa", Sector: "Saúde", Location: &facility.Coordinates{Lat: -18.91, Lng: -48.27}},
		{Name: "Beta", Sector: "Agro", Location: &facility.Coordinates{Lat: -18.92, Lng: -48.28}},
		{Name: "Sem Lugar", Sector: "Fintech"},
		{Name: "Gama", Sector: "Edtech", Location: &facility.Coordinates{Lat: -18.93, Lng: -48.29}},
		{Name: "Delta", Sector: "Agro", Location: &facility.Coordinates{Lat: -18.94, Lng: -48.30}},
	})
}

func TestStripCodeFence(t *testing.T) {
	cases := map[string]string{
		"{\"a\":1}":                     "{\"a\":1}",
		"```json\n{\"a\":1}\n```":       "{\"a\":1}",
		"```\n{\"a\":1}\n```":           "{\"a\":1}",
		"  ```JSON\n{\"a\":1}```  \n":   "{\"a\":1}",
		"```{\"a\":1}```":               "{\"a\":1}",
		"```json {\"a\":1}```":          "{\"a\":1}",
		"```json{\"a\":1}```":           "{\"a\":1}",
		"```Json {\"a\":1}\n```":        "{\"a\":1}",
		"```javascript\n{\"a\":1}\n```": "{\"a\":1}",
	}
	for in, want := range cases {
		assert.Equal(t, want, stripCodeFence(in), "input %q", in)
	}
}

func TestReconcileKeepsModelOrder(t *testing.T) {
	o := testOffer()
	require.Len(t, o, 4)

	text := fmt.Sprintf(`{"route":[{"facilityId":0,"order":3,"reason":"a"},{"facilityId":%d,"order":1,"reason":"b"},{"facilityId":2,"order":2,"reason":null}],
		"description":"d","totalDistance":"5 km","estimatedTime":"2 horas","highlights":["h"],"optimizationCriteria":"c","extra":true}`, len(o)-1)

	it, err := reconcile("```json\n"+text+"\n```", o, 10)
	require.NoError(t, err)
	require.Len(t, it.Stops, 3)
	assert.Equal(t, "Alfa", it.Stops[0].Facility.Name)
	assert.Equal(t, "Delta", it.Stops[1].Facility.Name)
	assert.Equal(t, "Gama", it.Stops[2].Facility.Name)
	for i, stop := range it.Stops {
		assert.Equal(t, i+1, stop.Order)
	}
	assert.Equal(t, "", it.Stops[2].Reason)
	assert.Equal(t, "d", it.Description)
	assert.Equal(t, "c", it.CriteriaSummary)
	assert.Equal(t, []string{"h"}, it.Highlights)
}

func TestReconcileAcceptsSingleLineFence(t *testing.T) {
	o := testOffer()
	for _, text := range []string{
		"```json {\"route\":[{\"facilityId\":0},{\"facilityId\":1}]}```",
		"```json{\"route\":[{\"facilityId\":0},{\"facilityId\":1}]}```",
	} {
		it, err := reconcile(text, o, 0)
		require.NoError(t, err, text)
		require.Len(t, it.Stops, 2)
		assert.Equal(t, "Alfa", it.Stops[0].Facility.Name)
		assert.Equal(t, "Beta", it.Stops[1].Facility.Name)
	}
}

func TestReconcileRejectsWholeResponse(t *testing.T) {
	o := testOffer()
	cases := map[string]string{
		"index equal to length": fmt.Sprintf(`{"route":[{"facilityId":0},{"facilityId":%d}]}`, len(o)),
		"negative index":        `{"route":[{"facilityId":-1}]}`,
		"string index":          `{"route":[{"facilityId":"1"}]}`,
		"fractional index":      `{"route":[{"facilityId":1.5}]}`,
		"missing index":         `{"route":[{"reason":"x"}]}`,
		"null index":            `{"route":[{"facilityId":null}]}`,
		"duplicate index":       `{"route":[{"facilityId":1},{"facilityId":1}]}`,
		"empty route":           `{"route":[]}`,
		"null route":            `{"route":null}`,
		"missing route":         `{"description":"x"}`,
		"not json":              `Aqui está sua rota!`,
		"trailing text":         `{"route":[{"facilityId":1}]} obrigado`,
		"wrong highlight type":  `{"route":[{"facilityId":1}],"highlights":"x"}`,
		"empty":                 "   ",
	}
	for name, text := range cases {
		t.Run(name, func(t *testing.T) {
			it, err := reconcile(text, o, 10)
			require.ErrorIs(t, err, ai.ErrMalformedResponse)
			assert.Empty(t, it.Stops)
		})
	}
}

func TestReconcileEnforcesMaxStops(t *testing.T) {
	o := testOffer()
	text := `{"route":[{"facilityId":0},{"facilityId":1},{"facilityId":2}]}`

	_, err := reconcile(text, o, 2)
	require.ErrorIs(t, err, ai.ErrMalformedResponse)

	it, err := reconcile(text, o, 0)
	require.NoError(t, err)
	assert.Len(t, it.Stops, 3)
	assert.NotNil(t, it.Highlights)
}

func TestReconcileThematic(t *testing.T) {
	o := testOffer()

	routes, err := reconcileThematic(`{"routes":[{"route":[{"facilityId":0}],"description":"iniciante"},{"route":[{"facilityId":3},{"facilityId":1}]}]}`, o)
	require.NoError(t, err)
	require.Len(t, routes, 2)
	assert.Equal(t, "iniciante", routes[0].Description)
	assert.Equal(t, "Delta", routes[1].Stops[0].Facility.Name)

	_, err = reconcileThematic(`{"routes":[{"route":[{"facilityId":0}]},{"route":[{"facilityId":9}]}]}`, o)
	require.ErrorIs(t, err, ai.ErrMalformedResponse)

	_, err = reconcileThematic(`{"routes":[]}`, o)
	require.ErrorIs(t, err, ai.ErrMalformedResponse)
}
