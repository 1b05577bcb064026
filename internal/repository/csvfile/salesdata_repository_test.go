package csvfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `order_id,user_id,product_name,category,order_date,ship_date,unit_price,quantity,discount,review_score
1001,7,Lipstick,Beauty,2024-03-01,2024-03-04,10.50,200,0,5
1002,8,Headphones,Electronics,2024-03-02,2024-03-06,80.00,197,10,4
1003,9,Table,Home,2024-03-05,2024-03-09,120.00,81,15,3
`

func writeSample(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "sales_data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestNewSalesDataRepositoryParsesRows(t *testing.T) {
	repo, err := NewSalesDataRepository(writeSample(t, sampleCSV))
	require.NoError(t, err)

	lines, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, lines, 3)

	first := lines[0]
	assert.Equal(t, int64(1001), first.OrderID)
	assert.Equal(t, "Lipstick", first.ProductName)
	assert.Equal(t, "Beauty", first.Category)
	assert.Equal(t, "10.5", first.UnitPrice.String())
	assert.Equal(t, int64(200), first.Quantity)
	assert.Equal(t, 5, first.ReviewScore)
	assert.Equal(t, "2024-03-01", first.OrderDate.Format("2006-01-02"))
}

func TestFindByDateRangeFilters(t *testing.T) {
	repo, err := NewSalesDataRepository(writeSample(t, sampleCSV))
	require.NoError(t, err)

	from, _ := time.Parse("2006-01-02", "2024-03-01")
	to, _ := time.Parse("2006-01-02", "2024-03-02")

	lines, err := repo.FindByDateRange(context.Background(), from, to)
	require.NoError(t, err)

	require.Len(t, lines, 2)
	assert.Equal(t, int64(1001), lines[0].OrderID)
	assert.Equal(t, int64(1002), lines[1].OrderID)
}

func TestNewSalesDataRepositoryRejectsBadRows(t *testing.T) {
	bad := `order_id,user_id,product_name,category,order_date,ship_date,unit_price,quantity,discount,review_score
not-a-number,7,Lipstick,Beauty,2024-03-01,2024-03-04,10.50,200,0,5
`
	_, err := NewSalesDataRepository(writeSample(t, bad))
	assert.Error(t, err)
}

func TestNewSalesDataRepositoryRejectsWrongHeader(t *testing.T) {
	_, err := NewSalesDataRepository(writeSample(t, "a,b,c\n1,2,3\n"))
	assert.Error(t, err)
}

func TestNewSalesDataRepositoryMissingFile(t *testing.T) {
	_, err := NewSalesDataRepository(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}
