// Package invoice holds the invoices and credit notes derived from orders.
package invoice
