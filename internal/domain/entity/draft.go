package entity

// InvoiceDraft es el borrador de factura en edición. Se trata como un valor
// inmutable: cada edición produce un borrador nuevo que reemplaza al anterior.
//
// Los campos numéricos editables (Tax, Discount y los de cada LineItem) se
// guardan como texto para distinguir "en blanco" de "cero".
type InvoiceDraft struct {
	InvoiceNumber  string `json:"invoiceNumber"`
	Date           string `json:"date"`    // fecha ISO (YYYY-MM-DD)
	DueDate        string `json:"dueDate"` // fecha ISO (YYYY-MM-DD)
	CompanyName    string `json:"companyName"`
	CompanyEmail   string `json:"companyEmail"`
	CompanyPhone   string `json:"companyPhone"`
	CompanyAddress string `json:"companyAddress"`
	ClientName     string `json:"clientName"`
	ClientEmail    string `json:"clientEmail"`
	ClientPhone    string `json:"clientPhone"`
	ClientAddress  string `json:"clientAddress"`
	// Items con orden de inserción significativo.
	Items []LineItem `json:"items"`
	// Tax (porcentaje) y Discount (monto absoluto): en blanco = sin valor.
	Tax      string `json:"tax"`
	Discount string `json:"discount"`
	Notes    string `json:"notes"`
}

// DefaultDraft devuelve el borrador inicial: numeración INV-001 y una única
// línea vacía con id 1.
func DefaultDraft() *InvoiceDraft {
	d := &InvoiceDraft{
		InvoiceNumber: "INV-001",
		Items: []LineItem{
			{ID: 1},
		},
	}
	return d
}

// Clone devuelve una copia profunda del borrador (las ediciones nunca mutan
// el valor compartido).
func (d *InvoiceDraft) Clone() *InvoiceDraft {
	if d == nil {
		return nil
	}
	cp := *d
	cp.Items = make([]LineItem, len(d.Items))
	copy(cp.Items, d.Items)
	return &cp
}

// NextItemID calcula el id para una línea nueva: max(ids existentes, 0) + 1.
// Si se borra la línea de mayor id, el siguiente alta puede repetir un id ya
// usado; ese comportamiento se conserva tal cual.
func (d *InvoiceDraft) NextItemID() int {
	max := 0
	for _, it := range d.Items {
		if it.ID > max {
			max = it.ID
		}
	}
	return max + 1
}

// HasUniqueItemIDs verifica la invariante de ids únicos dentro de Items.
func (d *InvoiceDraft) HasUniqueItemIDs() bool {
	seen := make(map[int]struct{}, len(d.Items))
	for _, it := range d.Items {
		if _, dup := seen[it.ID]; dup {
			return false
		}
		seen[it.ID] = struct{}{}
	}
	return true
}
