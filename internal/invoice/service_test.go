package invoice

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"faktura/pkg/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// validInvoice returns an invoice that passes Validate.
// 2 x 100.00 net at 23%: net 200.00, VAT 46.00, gross 246.00.
func validInvoice() *models.Invoice {
	return &models.Invoice{
		InvoiceNumber: "FV/2024/05/001",
		DateIssued:    "2024-05-31",
		DateSale:      "2024-05-31",
		Seller: models.Party{
			CompanyID:   "s1",
			Name:        "Sprzedawca Sp. z o.o.",
			Address:     "ul. Długa 1, 00-001 Warszawa",
			NIP:         "5260001246",
			BankAccount: "PKO BP 12 1020 0000 0000 0000 0000 0000",
		},
		Buyer: models.Party{
			CompanyID: "b1",
			Name:      "Nabywca S.A.",
			Address:   "ul. Krótka 2, 30-001 Kraków",
			NIP:       "6760001234",
		},
		Items: []models.LineItem{
			{
				Description: "Usługa programistyczna",
				Quantity:    dec("2"),
				NetPrice:    dec("100.00"),
				BruttoPrice: dec("123.00"),
				VATRate:     dec("23"),
			},
		},
	}
}

func TestSummarize(t *testing.T) {
	svc := NewService()

	sum := svc.Summarize(validInvoice())
	assert.Equal(t, "FV/2024/05/001", sum.InvoiceNumber)
	assert.Equal(t, "200.00", sum.Totals.NetTotal.StringFixed(2))
	assert.Equal(t, "46.00", sum.Totals.VATTotal.StringFixed(2))
	assert.Equal(t, "246.00", sum.Totals.GrossTotal.StringFixed(2))
	assert.True(t, sum.AmountDue.Equal(sum.Totals.GrossTotal))
	assert.Equal(t, "dwieście czterdzieści sześć PLN zero gr", sum.AmountInWords)
	assert.Equal(t, 1, sum.ItemCount)
	assert.Empty(t, sum.Warnings)
	assert.False(t, sum.HasDiscrepancy)
}

func TestSummarize_Warnings(t *testing.T) {
	svc := NewService()

	t.Run("gross diverges from net plus VAT", func(t *testing.T) {
		inv := validInvoice()
		inv.Items[0].BruttoPrice = dec("130.00")

		sum := svc.Summarize(inv)
		assert.Equal(t, "260.00", sum.Totals.GrossTotal.StringFixed(2), "gross must not be corrected")
		assert.True(t, sum.HasDiscrepancy)
		require.Len(t, sum.Warnings, 1)
		assert.Contains(t, sum.Warnings[0], "Totals mismatch")
	})

	t.Run("cent drift is tolerated", func(t *testing.T) {
		inv := validInvoice()
		inv.Items = []models.LineItem{
			{Description: "a", Quantity: dec("3"), NetPrice: dec("0.99"), BruttoPrice: dec("1.22"), VATRate: dec("23")},
		}
		// net 2.97, VAT 0.68, gross 3.66
		sum := svc.Summarize(inv)
		assert.False(t, sum.HasDiscrepancy)
		assert.Empty(t, sum.Warnings)
	})

	t.Run("non-standard rate", func(t *testing.T) {
		inv := validInvoice()
		inv.Items[0].VATRate = dec("19")
		inv.Items[0].BruttoPrice = dec("119.00")

		sum := svc.Summarize(inv)
		require.Len(t, sum.Warnings, 1)
		assert.Contains(t, sum.Warnings[0], "non-standard VAT rate 19%")
	})

	t.Run("amount too large to spell", func(t *testing.T) {
		inv := validInvoice()
		inv.Items[0].Quantity = dec("10000")

		sum := svc.Summarize(inv)
		assert.Equal(t, "number too large PLN zero gr", sum.AmountInWords)
		require.NotEmpty(t, sum.Warnings)
		assert.Contains(t, sum.Warnings[0], "Amount in words unavailable")
	})
}

func TestDeriveItem(t *testing.T) {
	svc := NewService()
	base := models.LineItem{Description: "x", Quantity: dec("1"), NetPrice: dec("100"), BruttoPrice: dec("0"), VATRate: dec("23")}

	t.Run("net edited", func(t *testing.T) {
		got, err := svc.DeriveItem(base, FieldNet)
		require.NoError(t, err)
		assert.Equal(t, "123.00", got.BruttoPrice.StringFixed(2))
		assert.True(t, got.NetPrice.Equal(base.NetPrice))
	})

	t.Run("rate edited", func(t *testing.T) {
		item := base
		item.VATRate = dec("8")
		got, err := svc.DeriveItem(item, FieldVATRate)
		require.NoError(t, err)
		assert.Equal(t, "108.00", got.BruttoPrice.StringFixed(2))
	})

	t.Run("brutto edited", func(t *testing.T) {
		item := base
		item.BruttoPrice = dec("61.50")
		got, err := svc.DeriveItem(item, FieldGross)
		require.NoError(t, err)
		assert.Equal(t, "50.00", got.NetPrice.StringFixed(2))
	})

	t.Run("rate of minus 100", func(t *testing.T) {
		item := base
		item.VATRate = dec("-100")
		_, err := svc.DeriveItem(item, FieldGross)
		require.Error(t, err)

		var procErr *ProcessingError
		require.ErrorAs(t, err, &procErr)
		assert.Equal(t, "DeriveItem", procErr.Op)
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := svc.DeriveItem(base, Field("quantity"))
		assert.ErrorIs(t, err, ErrUnknownField)
	})
}

func TestParseField(t *testing.T) {
	for in, want := range map[string]Field{
		"netPrice": FieldNet, "netto": FieldNet, "NET": FieldNet,
		"bruttoPrice": FieldGross, "gross": FieldGross,
		"vatRate": FieldVATRate, "vat": FieldVATRate,
	} {
		got, err := ParseField(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseField("description")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(validInvoice()))

	inv := validInvoice()
	inv.InvoiceNumber = " "
	inv.Seller.BankAccount = ""
	inv.Buyer.NIP = ""
	inv.Items = append(inv.Items, models.LineItem{
		Description: "",
		Quantity:    dec("0"),
		NetPrice:    dec("10"),
		BruttoPrice: dec("-1"),
		VATRate:     dec("23"),
	})

	err := Validate(inv)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingRequiredField)
	assert.ErrorIs(t, err, ErrInvalidLineItem)

	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))

	fields := make([]string, 0, len(verrs))
	for _, e := range verrs {
		fields = append(fields, e.Field)
	}
	assert.Equal(t, []string{
		"invoiceNumber",
		"seller.bankAccount",
		"buyer.nip",
		"items[1].description",
		"items[1].quantity",
		"items[1].bruttoPrice",
	}, fields)
}

func TestValidate_NoItems(t *testing.T) {
	inv := validInvoice()
	inv.Items = nil

	err := Validate(inv)
	assert.ErrorIs(t, err, ErrInvalidLineItem)
	assert.Contains(t, err.Error(), "at least one line item")
}

func TestLoadInvoice(t *testing.T) {
	doc := `{
		"invoiceNumber": "FV/1",
		"dateIssued": "2024-01-02",
		"dateSale": "2024-01-02",
		"seller": {"name": "S", "address": "A", "nip": "1", "bankAccount": "PL00"},
		"buyer": {"name": "B", "address": "A", "nip": "2"},
		"items": [{"description": "d", "quantity": 1, "netPrice": "10.005", "bruttoPrice": 10.005, "vatRate": 0}]
	}`

	inv, err := LoadInvoice(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, inv.Items, 1)
	assert.Equal(t, "10.005", inv.Items[0].NetPrice.String())
	assert.Equal(t, "10.005", inv.Items[0].BruttoPrice.String())

	sum := NewService().Summarize(inv)
	assert.Equal(t, "10.01", sum.Totals.NetTotal.StringFixed(2))
}

func TestLoadInvoice_Invalid(t *testing.T) {
	_, err := LoadInvoice(strings.NewReader(`{"items": [{"quantity": "two"}]}`))
	assert.ErrorIs(t, err, ErrInvalidInvoiceData)

	_, err = LoadInvoice(strings.NewReader(`{"invoice_number": "x"}`))
	assert.ErrorIs(t, err, ErrInvalidInvoiceData)
}

func TestLoadInvoiceFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "faktura.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"invoiceNumber": "FV/2", "items": []}`), 0o644))

	inv, err := LoadInvoiceFile(path)
	require.NoError(t, err)
	assert.Equal(t, "FV/2", inv.InvoiceNumber)

	_, err = LoadInvoiceFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCompose(t *testing.T) {
	seller := &models.SellerCompany{
		ID:      "s1",
		Name:    "Sprzedawca Sp. z o.o.",
		Address: "ul. Długa 1",
		NIP:     "5260001246",
		BankAccounts: []models.BankAccount{
			{ID: "a1", BankName: "PKO BP", AccountNumber: "12 1020 0000", SellerID: "s1"},
			{ID: "a2", AccountNumber: "34 1140 0000", SellerID: "s1"},
		},
	}
	buyer := &models.BuyerCompany{ID: "b1", Name: "Nabywca", Address: "ul. Krótka 2", NIP: "6760001234", SellerID: "s1"}
	items := validInvoice().Items
	header := Header{InvoiceNumber: "FV/7", DateIssued: "2024-06-01", DateSale: "2024-05-31"}

	inv, err := Compose(header, seller, "a1", buyer, items)
	require.NoError(t, err)
	assert.Equal(t, "FV/7", inv.InvoiceNumber)
	assert.Equal(t, "PKO BP 12 1020 0000", inv.Seller.BankAccount)
	assert.Equal(t, "s1", inv.Seller.CompanyID)
	assert.Equal(t, "Nabywca", inv.Buyer.Name)
	assert.Empty(t, inv.Buyer.BankAccount)
	assert.NoError(t, Validate(inv))

	inv.Items[0].Description = "changed"
	assert.Equal(t, "Usługa programistyczna", items[0].Description, "items must be copied")

	inv, err = Compose(header, seller, "a2", buyer, items)
	require.NoError(t, err)
	assert.Equal(t, "34 1140 0000", inv.Seller.BankAccount)

	_, err = Compose(header, seller, "missing", buyer, items)
	assert.ErrorIs(t, err, ErrInvalidInvoiceData)

	other := *buyer
	other.SellerID = "s2"
	_, err = Compose(header, seller, "a1", &other, items)
	assert.ErrorIs(t, err, ErrInvalidInvoiceData)

	_, err = Compose(header, nil, "", buyer, items)
	assert.ErrorIs(t, err, ErrMissingRequiredField)
}
