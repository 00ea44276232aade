package components_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesafacil/reservas/internal/model"
	"github.com/mesafacil/reservas/internal/testutil"
	"github.com/mesafacil/reservas/internal/web/templates/components"
)

func render(t *testing.T, c templ.Component) *goquery.Document {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	return doc
}

func TestReservationTableEmpty(t *testing.T) {
	doc := render(t, components.ReservationTable(nil))

	assert.Equal(t, 1, doc.Find("#no-reservations").Length())
	assert.Equal(t, 0, doc.Find("table").Length())
}

func TestReservationTableRowsAreEscaped(t *testing.T) {
	doc := render(t, components.ReservationTable([]*model.Reservation{{
		ID:        42,
		Name:      "<script>alert(1)</script>",
		CPF:       testutil.ValidCPF(1),
		Phone:     "11999998888",
		PartySize: 3,
		Date:      "2024-01-15",
	}}))

	row := doc.Find("tr.reservation")
	require.Equal(t, 1, row.Length())
	assert.Equal(t, "42", row.AttrOr("data-id", ""))
	assert.Equal(t, "15/01/2024", row.Find(".date").Text())
	assert.Equal(t, "<script>alert(1)</script>", row.Find(".name").Text())
	assert.Equal(t, 0, doc.Find("script").Length())
	assert.Equal(t, "3", row.Find(".party").Text())
	assert.Regexp(t, `^\d{3}\.\d{3}\.\d{3}-\d{2}$`, row.Find(".cpf").Text())
}

func TestDateCountsLinksEachDate(t *testing.T) {
	doc := render(t, components.DateCounts("upcoming-dates", "Próximas datas", []model.DateCount{
		{Date: "2024-01-11", Total: 2},
		{Date: "2024-01-12", Total: 1},
	}))

	items := doc.Find("#upcoming-dates li")
	require.Equal(t, 2, items.Length())
	first := items.First()
	assert.Equal(t, "2024-01-11", first.AttrOr("data-date", ""))
	assert.Equal(t, "/dashboard/date/2024-01-11", first.Find("a").AttrOr("href", ""))
	assert.Equal(t, "11/01/2024", first.Find("a").Text())
	assert.Equal(t, "2", first.Find(".total").Text())
}

func TestDateCountsEmpty(t *testing.T) {
	doc := render(t, components.DateCounts("busiest-dates", "Datas mais movimentadas", nil))

	assert.Equal(t, "Datas mais movimentadas", doc.Find("#busiest-dates h2").Text())
	assert.Equal(t, 1, doc.Find("#busiest-dates p.empty").Length())
}

func TestStatCards(t *testing.T) {
	doc := render(t, components.StatCards(model.Statistics{TotalActive: 7, CountToday: 2}))

	assert.Equal(t, "7", doc.Find("#total-active strong").Text())
	assert.Equal(t, "2", doc.Find("#count-today strong").Text())
}
