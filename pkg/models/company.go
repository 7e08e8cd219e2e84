package models

// Party is a seller or buyer as printed on the invoice.
type Party struct {
	CompanyID   string `json:"companyId"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	NIP         string `json:"nip"`                   // Polish tax identification number
	BankAccount string `json:"bankAccount,omitempty"` // Seller only, printed under "Dane do przelewu"
}

type BankAccount struct {
	ID            string `json:"id"`
	AccountName   string `json:"accountName"`
	BankName      string `json:"bankName"`
	AccountNumber string `json:"accountNumber"`
	SellerID      string `json:"sellerId"`
}

type SellerCompany struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Address      string        `json:"address"`
	NIP          string        `json:"nip"`
	BankAccounts []BankAccount `json:"bankAccounts"`
}

type BuyerCompany struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	NIP      string `json:"nip"`
	SellerID string `json:"sellerId"`
}

// SellerParty returns the seller as an invoice party paying into the given account.
// An unknown accountID leaves BankAccount empty.
func (s *SellerCompany) SellerParty(accountID string) Party {
	p := Party{
		CompanyID: s.ID,
		Name:      s.Name,
		Address:   s.Address,
		NIP:       s.NIP,
	}
	for _, acc := range s.BankAccounts {
		if acc.ID == accountID {
			p.BankAccount = acc.Label()
			break
		}
	}
	return p
}

// BuyerParty returns the buyer as an invoice party.
func (b *BuyerCompany) BuyerParty() Party {
	return Party{
		CompanyID: b.ID,
		Name:      b.Name,
		Address:   b.Address,
		NIP:       b.NIP,
	}
}

// Label formats the account the way it is printed on the invoice.
func (a BankAccount) Label() string {
	if a.BankName == "" {
		return a.AccountNumber
	}
	return a.BankName + " " + a.AccountNumber
}
