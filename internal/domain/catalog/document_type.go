package catalog

import (
	"github.com/mysticum/wms/internal/domain/shared"
)

// EffectClass is the behavioral class of a document type: what posting a
// finalized document of that type does to the inventory projection. It is
// resolved once, when the catalog entry is loaded, so posting never matches
// symbol strings again.
type EffectClass string

const (
	// EffectNone covers order documents and anything else without direct
	// inventory effects.
	EffectNone EffectClass = "NONE"
	// EffectAdditive creates or increments stock lots.
	EffectAdditive EffectClass = "ADDITIVE"
	// EffectSubtractive removes quantity from stock lots.
	EffectSubtractive EffectClass = "SUBTRACTIVE"
	// EffectTransfer moves quantity between cells in one transaction.
	EffectTransfer EffectClass = "TRANSFER"
)

// Well-known document type symbols. The symbol set is reference data seeded
// by migration; these constants exist for the classification table and the
// linkage protocol, which key on them.
const (
	SymbolGoodsReceipt      = "BO"  // initial stock receipt
	SymbolExternalReceipt   = "PZ"  // receipt from external supplier
	SymbolInternalMoveIn    = "WM+" // internal movement, receiving leg
	SymbolInternalMoveOut   = "WM-" // internal movement, issuing leg
	SymbolCorrectionPlus    = "NN+"
	SymbolCorrectionMinus   = "NN-"
	SymbolExternalShipment  = "FV"
	SymbolWarrantyReturn    = "RW-" // defective goods shipped back out under warranty
	SymbolShipmentOrder     = "FVO"
	SymbolInternalTransfer  = "MM"
	SymbolTransferOrder     = "MMO"
	SymbolRelocationOrder   = "TRO"
	SymbolCountPartialOrder = "ICO"
	SymbolCountFullOrder    = "IPO"
	SymbolCountPartialPlus  = "IC+"
	SymbolCountPartialMinus = "IC-"
	SymbolCountFullPlus     = "IP+"
	SymbolCountFullMinus    = "IP-"
)

// DocumentType is a static catalog entry. Instances are reference data:
// created by seeding, never by the core.
type DocumentType struct {
	shared.BaseEntity
	Group       string
	Symbol      string
	Name        string
	Description string
	IsFixing    bool
	// RequiresVerification marks types that only managers may create.
	RequiresVerification bool
	// Effect is the posting behavior, derived from Symbol at load time.
	Effect EffectClass
	// TargetsDefaultCell marks additive types that post to the origin
	// department's default cell instead of the line item's cell.
	TargetsDefaultCell bool
	// IsOrder marks planning documents that start in Generated status and
	// may be fulfilled by later response documents.
	IsOrder bool
}

// ClassifyEffect derives the posting effect class for a type symbol.
func ClassifyEffect(symbol string) EffectClass {
	switch symbol {
	case SymbolGoodsReceipt, SymbolExternalReceipt, SymbolInternalMoveIn,
		SymbolCorrectionPlus, SymbolCountPartialPlus, SymbolCountFullPlus:
		return EffectAdditive
	case SymbolExternalShipment, SymbolWarrantyReturn, SymbolInternalMoveOut,
		SymbolCorrectionMinus, SymbolCountPartialMinus, SymbolCountFullMinus:
		return EffectSubtractive
	case SymbolInternalTransfer:
		return EffectTransfer
	default:
		return EffectNone
	}
}

// IsOrderSymbol reports whether the symbol denotes an order document.
func IsOrderSymbol(symbol string) bool {
	switch symbol {
	case SymbolShipmentOrder, SymbolCountPartialOrder, SymbolCountFullOrder,
		SymbolTransferOrder, SymbolRelocationOrder:
		return true
	}
	return false
}

// IsInventoryCountOrderSymbol reports whether the symbol is an
// inventory-count order that closes into surplus/shortage documents.
func IsInventoryCountOrderSymbol(symbol string) bool {
	return symbol == SymbolCountPartialOrder || symbol == SymbolCountFullOrder
}

// targetsDefaultCell reports whether additive postings of this symbol go to
// the origin department's default cell.
func targetsDefaultCell(symbol string) bool {
	return symbol == SymbolGoodsReceipt || symbol == SymbolInternalMoveIn
}

// NewDocumentType creates a catalog entry with its behavioral capabilities
// resolved from the symbol.
func NewDocumentType(group, symbol, name string, requiresVerification bool) (*DocumentType, error) {
	if symbol == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Document type symbol cannot be empty")
	}
	return &DocumentType{
		BaseEntity:           shared.NewBaseEntity(),
		Group:                group,
		Symbol:               symbol,
		Name:                 name,
		RequiresVerification: requiresVerification,
		Effect:               ClassifyEffect(symbol),
		TargetsDefaultCell:   targetsDefaultCell(symbol),
		IsOrder:              IsOrderSymbol(symbol),
	}, nil
}

// ResolveCapabilities recomputes the derived behavioral fields. Repositories
// call it after loading a row so persisted catalogs pick up classification
// fixes without a data migration.
func (t *DocumentType) ResolveCapabilities() {
	t.Effect = ClassifyEffect(t.Symbol)
	t.TargetsDefaultCell = targetsDefaultCell(t.Symbol)
	t.IsOrder = IsOrderSymbol(t.Symbol)
}
