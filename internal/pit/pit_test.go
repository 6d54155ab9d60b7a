package pit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const listing = `<table>
	<tr><th>ID</th><th>Guest</th></tr>
	<tr>
		<td>1001</td>
		<td>Ana Pérez <span class="badge">GOLD</span></td>
		<td>06/05/2023</td><td>09/05/2023</td><td>3</td><td>204</td>
		<td>$850.00 <span class="badge">VARIABLE</span></td>
		<td>$2,550.00</td>
		<td>PAID</td>
		<td></td>
	</tr>
	<tr>
		<td>1002</td><td>Luis Gómez</td>
		<td>07/05/2023</td><td>08/05/2023</td><td>1</td><td>310</td>
		<td>$900.00</td><td>$900.00</td><td>PENDING</td><td>Late checkout</td>
	</tr>
	<tr><td>short</td><td>row</td></tr>
</table>`

func TestParseListing(t *testing.T) {
	reservations, err := ParseListing([]byte(listing))
	require.NoError(t, err)

	expected := []Reservation{
		{
			ID: "1001", Guest: "Ana Pérez", Membership: "GOLD",
			DateIn: "06/05/2023", DateOut: "09/05/2023", Nights: "3", Room: "204",
			Rate: "$850.00", VariableRate: true, Total: "$2,550.00", Status: "PAID",
		},
		{
			ID: "1002", Guest: "Luis Gómez",
			DateIn: "07/05/2023", DateOut: "08/05/2023", Nights: "1", Room: "310",
			Rate: "$900.00", Total: "$900.00", Status: "PENDING", Observations: "Late checkout",
		},
	}
	if diff := cmp.Diff(expected, reservations); diff != "" {
		t.Fatal(diff)
	}
	require.True(t, reservations[0].Paid())
	require.False(t, reservations[1].Paid())
}

func TestWritePage(t *testing.T) {
	reservations, err := ParseListing([]byte(listing))
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "pit")
	path, err := WritePage(dir, reservations, time.Date(2023, time.May, 8, 10, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, PageName), path)

	page, err := os.ReadFile(path)
	require.NoError(t, err)
	rendered := string(page)
	require.Contains(t, rendered, "08/05/2023 10:30")
	require.Contains(t, rendered, "Late checkout")
	require.Contains(t, rendered, "Pendientes de pago: 1")
	require.Equal(t, 2, strings.Count(rendered, `class="tr-rsrv"`))

	_, err = os.Stat(filepath.Join(dir, StylesheetName))
	require.NoError(t, err)
}

func TestWritePageEscapes(t *testing.T) {
	dir := t.TempDir()
	path, err := WritePage(dir, []Reservation{{ID: "1", Guest: "<script>x</script>"}}, time.Now())
	require.NoError(t, err)

	page, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotContains(t, string(page), "<script>x</script>")
}
