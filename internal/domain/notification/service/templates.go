package service

import (
	"fmt"
	"strings"

	orderModel "github.com/Bange254/Bttshoes/internal/domain/order/model"
)

// renderOrderConfirmation builds the customer-facing confirmation from
// the order snapshot. Totals and items come from the frozen snapshot,
// never from live catalog data.
func renderOrderConfirmation(order *orderModel.Order) (subject, html string) {
	subject = fmt.Sprintf("Order Confirmation - %s", order.OrderNumber)

	var b strings.Builder
	b.WriteString(`<!DOCTYPE html><html><body style="font-family:Arial,sans-serif;color:#333">`)
	b.WriteString(`<div style="max-width:600px;margin:0 auto;padding:20px">`)
	b.WriteString(`<div style="background:#1f2937;color:#fff;padding:20px;text-align:center"><h1>BTT Shoes</h1></div>`)
	fmt.Fprintf(&b, `<h2>Thank you for your order, %s!</h2>`, order.ShippingAddress.Name)
	fmt.Fprintf(&b, `<p>Your order <strong>%s</strong> has been confirmed.</p>`, order.OrderNumber)

	b.WriteString(`<h3>Items</h3><table width="100%" cellpadding="6">`)
	for _, item := range order.Items {
		fmt.Fprintf(&b, `<tr><td>%s (%s, %s) x%d</td><td align="right">KES %.2f</td></tr>`,
			item.Name, item.Size, item.Color, item.Quantity, item.Price*float64(item.Quantity))
	}
	b.WriteString(`</table>`)

	fmt.Fprintf(&b, `<p>Subtotal: KES %.2f<br>Shipping: KES %.2f<br>`, order.Subtotal, order.Shipping)
	if order.Discount > 0 {
		fmt.Fprintf(&b, `Discount: -KES %.2f<br>`, order.Discount)
	}
	fmt.Fprintf(&b, `<strong>Total: KES %.2f</strong></p>`, order.Total)

	fmt.Fprintf(&b, `<h3>Delivery</h3><p>%s<br>%s, %s<br>%s</p>`,
		order.ShippingAddress.Name, order.ShippingAddress.Address, order.ShippingAddress.City, order.ShippingAddress.Phone)
	fmt.Fprintf(&b, `<p>Payment method: %s</p>`, strings.ToUpper(order.PaymentMethod))
	if order.EstimatedDelivery != nil {
		fmt.Fprintf(&b, `<p>Estimated delivery: %s</p>`, order.EstimatedDelivery.Format("Mon, 02 Jan 2006"))
	}
	b.WriteString(`</div></body></html>`)

	return subject, b.String()
}

// renderAdminNotification builds the internal new-order alert.
func renderAdminNotification(order *orderModel.Order) (subject, html string) {
	subject = fmt.Sprintf("New Order - %s", order.OrderNumber)

	var b strings.Builder
	b.WriteString(`<!DOCTYPE html><html><body style="font-family:Arial,sans-serif;color:#333">`)
	fmt.Fprintf(&b, `<h2>New order %s</h2>`, order.OrderNumber)
	fmt.Fprintf(&b, `<p>Customer: %s (%s)</p>`, order.ShippingAddress.Name, order.Email)
	fmt.Fprintf(&b, `<p>Type: %s | Payment: %s</p>`, order.OrderType, strings.ToUpper(order.PaymentMethod))

	b.WriteString(`<ul>`)
	for _, item := range order.Items {
		fmt.Fprintf(&b, `<li>%s [%s] x%d @ KES %.2f</li>`, item.Name, item.SKU, item.Quantity, item.Price)
	}
	b.WriteString(`</ul>`)

	fmt.Fprintf(&b, `<p><strong>Total: KES %.2f</strong></p>`, order.Total)
	fmt.Fprintf(&b, `<p>Ship to: %s, %s, %s</p>`,
		order.ShippingAddress.Address, order.ShippingAddress.City, order.ShippingAddress.Phone)
	b.WriteString(`</body></html>`)

	return subject, b.String()
}
