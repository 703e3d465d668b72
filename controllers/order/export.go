package orderControllers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/Technobabies/meli-ecommerce-orders-api/controllers/response"
	"github.com/Technobabies/meli-ecommerce-orders-api/services"
	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
)

const timestampLayout = "2006-01-02 15:04:05"

// ExportOrdersToExcel streams the active orders as an .xlsx workbook with one
// row per order.
func ExportOrdersToExcel(svc *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := svc.ListActiveOrders(c.Request.Context())
		if err != nil {
			response.Error(c, err)
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Orders")
		if err != nil {
			response.Error(c, err)
			return
		}

		// Header row
		headers := []string{
			"ID", "CreatedBy", "Status", "TotalPrice", "ItemCount", "Items", "OrderDate", "LastUpdatedDate",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		// Data rows
		for _, o := range orders {
			row := sheet.AddRow()

			row.AddCell().SetValue(o.ID.String())
			row.AddCell().SetValue(o.CreatedBy.String())
			row.AddCell().SetValue(string(o.Status))
			row.AddCell().SetValue(o.TotalPrice.StringFixed(2))
			row.AddCell().SetValue(len(o.Items))

			var lines []string
			for _, it := range o.Items {
				lines = append(lines, it.ProductName+" x"+strconv.Itoa(it.Quantity)+" @ "+it.PricePerUnit.StringFixed(2))
			}
			row.AddCell().SetValue(strings.Join(lines, "; "))

			row.AddCell().SetValue(o.OrderDate.UTC().Format(timestampLayout))
			row.AddCell().SetValue(o.LastUpdatedDate.UTC().Format(timestampLayout))
		}

		// Set response headers for download
		c.Header("Content-Disposition", "attachment; filename=orders.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")
		c.Status(http.StatusOK)

		if err := file.Write(c.Writer); err != nil {
			log.Printf("❌ Failed to write orders workbook: %v", err)
		}
	}
}
