package cii

import (
	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/rezonia/facturx/internal/codes"
	"github.com/rezonia/facturx/internal/model"
	"github.com/rezonia/facturx/internal/money"
)

// Line items are parsed into the full EN 16931 shape first; the BASIC
// parser then rejects everything above its level before downgrading.

type lineDocument struct {
	id   string
	note *model.IncludedNote
}

type tradeProduct struct {
	name            string
	globalID        *model.ID
	sellerID        string
	buyerID         string
	description     string
	characteristics []model.ProductCharacteristic
	classifications []model.ProductClassification
	originCountry   string
}

type lineAgreement struct {
	grossPrice       *model.GrossPrice
	netPrice         money.Money
	basisQuantity    *money.OptionalQuantity
	buyerOrderLineID string
}

type lineSettlement struct {
	taxCategory    codes.TaxCategoryCode
	taxRate        *decimal.Decimal
	allowances     []model.LineAllowance
	charges        []model.LineCharge
	totalAmount    money.Money
	billingPeriod  *model.Period
	docRef         *model.DocRef
	tradeAccountID string
}

func (p *parser) parseLineItems(transaction *etree.Element) ([]model.TradeLineItem, error) {
	var items []model.TradeLineItem
	for _, el := range ramChildren(transaction, "IncludedSupplyChainTradeLineItem") {
		item, err := p.parseLineItem(el)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (p *parser) parseEN16931LineItems(transaction *etree.Element) ([]model.TradeLineItem, error) {
	var items []model.TradeLineItem
	for _, el := range ramChildren(transaction, "IncludedSupplyChainTradeLineItem") {
		item, err := p.parseEN16931LineItem(el)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (p *parser) parseLineItem(el *etree.Element) (*model.LineItem, error) {
	item, err := p.parseEN16931LineItem(el)
	if err != nil {
		return nil, err
	}
	if item.Note != nil {
		return nil, NewProfileError(model.ProfileBasic,
			"included notes are not allowed in line items")
	}
	if item.SellerAssignedID != "" {
		return nil, NewProfileError(model.ProfileBasic,
			"SellerAssignedID element is not allowed in line items")
	}
	if item.BuyerAssignedID != "" {
		return nil, NewProfileError(model.ProfileBasic,
			"BuyerAssignedID element is not allowed in line items")
	}
	if item.Description != "" {
		return nil, NewProfileError(model.ProfileBasic,
			"Description element is not allowed in line items")
	}
	if len(item.Characteristics) > 0 {
		return nil, NewProfileError(model.ProfileBasic,
			"ApplicableProductCharacteristic element is not allowed in line items")
	}
	if len(item.Classifications) > 0 {
		return nil, NewProfileError(model.ProfileBasic,
			"DesignatedProductClassification element is not allowed in line items")
	}
	if item.OriginCountry != "" {
		return nil, NewProfileError(model.ProfileBasic,
			"OriginTradeCountry element is not allowed in line items")
	}
	if item.BuyerOrderLineID != "" {
		return nil, NewProfileError(model.ProfileBasic,
			"BuyerOrderReferencedDocument element is not allowed in line items")
	}
	if item.GrossPrice != nil {
		return nil, NewProfileError(model.ProfileBasic,
			"GrossPriceProductTradePrice element is not allowed in line items")
	}
	if item.BillingPeriod != nil {
		return nil, NewProfileError(model.ProfileBasic,
			"BillingSpecifiedPeriod element is not allowed in line items")
	}
	if item.DocRef != nil {
		return nil, NewProfileError(model.ProfileBasic,
			"AdditionalReferencedDocument element is not allowed in line items")
	}
	if item.TradeAccountID != "" {
		return nil, NewProfileError(model.ProfileBasic,
			"ReceivableSpecifiedTradeAccountingAccount element is not allowed in line items")
	}
	return &item.LineItem, nil
}

func (p *parser) parseEN16931LineItem(el *etree.Element) (*model.EN16931LineItem, error) {
	doc, err := parseLineDocument(el)
	if err != nil {
		return nil, err
	}
	product, err := parseTradeProduct(el)
	if err != nil {
		return nil, err
	}
	agreement, err := p.parseLineAgreement(el)
	if err != nil {
		return nil, err
	}
	billedQuantity, err := parseLineDelivery(el)
	if err != nil {
		return nil, err
	}
	settlement, err := p.parseLineSettlement(el)
	if err != nil {
		return nil, err
	}
	return &model.EN16931LineItem{
		LineItem: model.LineItem{
			ID:             doc.id,
			Name:           product.name,
			NetPrice:       agreement.netPrice,
			BilledQuantity: billedQuantity,
			BilledTotal:    settlement.totalAmount,
			TaxRate:        settlement.taxRate,
			TaxCategory:    settlement.taxCategory,
			GlobalID:       product.globalID,
			BasisQuantity:  agreement.basisQuantity,
			Allowances:     settlement.allowances,
			Charges:        settlement.charges,
		},
		Description:      product.description,
		Note:             doc.note,
		GrossPrice:       agreement.grossPrice,
		SellerAssignedID: product.sellerID,
		BuyerAssignedID:  product.buyerID,
		Characteristics:  product.characteristics,
		Classifications:  product.classifications,
		OriginCountry:    product.originCountry,
		BuyerOrderLineID: agreement.buyerOrderLineID,
		BillingPeriod:    settlement.billingPeriod,
		DocRef:           settlement.docRef,
		TradeAccountID:   settlement.tradeAccountID,
	}, nil
}

func parseLineDocument(parent *etree.Element) (lineDocument, error) {
	el := ramChild(parent, "AssociatedDocumentLineDocument")
	if el == nil {
		return lineDocument{}, NewInvalidDocumentError("AssociatedDocumentLineDocument element not found")
	}
	id, err := childText(el, "LineID")
	if err != nil {
		return lineDocument{}, err
	}
	var note *model.IncludedNote
	if noteEl := ramChild(el, "IncludedNote"); noteEl != nil {
		n, err := parseNote(noteEl)
		if err != nil {
			return lineDocument{}, err
		}
		note = &n
	}
	return lineDocument{id: id, note: note}, nil
}

func parseTradeProduct(parent *etree.Element) (tradeProduct, error) {
	el := ramChild(parent, "SpecifiedTradeProduct")
	if el == nil {
		return tradeProduct{}, NewInvalidDocumentError("SpecifiedTradeProduct element not found")
	}
	var product tradeProduct
	var err error
	if product.globalID, err = childIDOptional(el, "GlobalID"); err != nil {
		return product, err
	}
	if product.sellerID, err = childTextOptional(el, "SellerAssignedID"); err != nil {
		return product, err
	}
	if product.buyerID, err = childTextOptional(el, "BuyerAssignedID"); err != nil {
		return product, err
	}
	if product.name, err = childText(el, "Name"); err != nil {
		return product, err
	}
	if product.description, err = childTextOptional(el, "Description"); err != nil {
		return product, err
	}
	for _, pcEl := range ramChildren(el, "ApplicableProductCharacteristic") {
		description, err := childText(pcEl, "Description")
		if err != nil {
			return product, err
		}
		value, err := childText(pcEl, "Value")
		if err != nil {
			return product, err
		}
		product.characteristics = append(product.characteristics,
			model.ProductCharacteristic{Description: description, Value: value})
	}
	for _, pcEl := range ramChildren(el, "DesignatedProductClassification") {
		classification, err := parseClassification(pcEl)
		if err != nil {
			return product, err
		}
		product.classifications = append(product.classifications, classification)
	}
	if countryEl := ramChild(el, "OriginTradeCountry"); countryEl != nil {
		if product.originCountry, err = childText(countryEl, "ID"); err != nil {
			return product, err
		}
	}
	return product, nil
}

func parseClassification(parent *etree.Element) (model.ProductClassification, error) {
	code := ramChild(parent, "ClassCode")
	if code == nil {
		return model.ProductClassification{}, NewInvalidDocumentError("ClassCode element not found")
	}
	if code.Text() == "" {
		return model.ProductClassification{}, NewInvalidDocumentError("ClassCode element has no text")
	}
	listID := code.SelectAttrValue("listID", "")
	if listID != "" && !codes.ItemTypeCode(listID).Valid() {
		return model.ProductClassification{}, NewInvalidDocumentError("invalid listID: %s", listID)
	}
	return model.ProductClassification{
		ClassCode:     code.Text(),
		ListID:        codes.ItemTypeCode(listID),
		ListVersionID: code.SelectAttrValue("listVersionID", ""),
	}, nil
}

func (p *parser) parseLineAgreement(parent *etree.Element) (lineAgreement, error) {
	el := ramChild(parent, "SpecifiedLineTradeAgreement")
	if el == nil {
		return lineAgreement{}, NewInvalidDocumentError("SpecifiedLineTradeAgreement element not found")
	}
	var a lineAgreement
	var err error
	if a.grossPrice, err = p.parseGrossPrice(el); err != nil {
		return a, err
	}
	netPriceEl := ramChild(el, "NetPriceProductTradePrice")
	if netPriceEl == nil {
		return a, NewInvalidDocumentError("NetPriceProductTradePrice element not found")
	}
	if a.netPrice, err = p.childAmount(netPriceEl, "ChargeAmount"); err != nil {
		return a, err
	}
	if a.basisQuantity, err = childOptionalQuantityOptional(netPriceEl, "BasisQuantity"); err != nil {
		return a, err
	}
	if orderEl := ramChild(el, "BuyerOrderReferencedDocument"); orderEl != nil {
		if a.buyerOrderLineID, err = childTextOptional(orderEl, "LineID"); err != nil {
			return a, err
		}
	}
	return a, nil
}

func (p *parser) parseGrossPrice(parent *etree.Element) (*model.GrossPrice, error) {
	el := ramChild(parent, "GrossPriceProductTradePrice")
	if el == nil {
		return nil, nil
	}
	var gross model.GrossPrice
	var err error
	if gross.Price, err = p.childAmount(el, "ChargeAmount"); err != nil {
		return nil, err
	}
	if gross.BasisQuantity, err = childOptionalQuantityOptional(el, "BasisQuantity"); err != nil {
		return nil, err
	}
	if acEl := ramChild(el, "AppliedTradeAllowanceCharge"); acEl != nil {
		allowance, charge, err := p.parseAllowanceCharge(acEl)
		if err != nil {
			return nil, err
		}
		reason := ""
		if charge != nil {
			reason = charge.Reason
		} else {
			reason = allowance.Reason
		}
		if reason != "" {
			return nil, NewProfileError(model.ProfileEN16931,
				"Reason element is not allowed in AppliedTradeAllowanceCharge")
		}
		gross.Allowance = allowance
		gross.Charge = charge
	}
	return &gross, nil
}

func parseLineDelivery(parent *etree.Element) (money.Quantity, error) {
	el := ramChild(parent, "SpecifiedLineTradeDelivery")
	if el == nil {
		return money.Quantity{}, NewInvalidDocumentError("SpecifiedLineTradeDelivery element not found")
	}
	return childQuantity(el, "BilledQuantity")
}

func (p *parser) parseLineSettlement(parent *etree.Element) (lineSettlement, error) {
	el := ramChild(parent, "SpecifiedLineTradeSettlement")
	if el == nil {
		return lineSettlement{}, NewInvalidDocumentError("SpecifiedLineTradeSettlement element not found")
	}
	taxEl := ramChild(el, "ApplicableTradeTax")
	if taxEl == nil {
		return lineSettlement{}, NewInvalidDocumentError("ApplicableTradeTax element not found")
	}
	var s lineSettlement
	var err error
	if s.taxCategory, s.taxRate, err = parseTaxCategory(taxEl); err != nil {
		return s, err
	}
	for _, acEl := range ramChildren(el, "SpecifiedTradeAllowanceCharge") {
		allowance, charge, err := p.parseAllowanceCharge(acEl)
		if err != nil {
			return s, err
		}
		if charge != nil {
			s.charges = append(s.charges, *charge)
		} else {
			s.allowances = append(s.allowances, *allowance)
		}
	}
	summationEl := ramChild(el, "SpecifiedTradeSettlementLineMonetarySummation")
	if summationEl == nil {
		return s, NewInvalidDocumentError("SpecifiedTradeSettlementLineMonetarySummation element not found")
	}
	if s.totalAmount, err = p.childAmount(summationEl, "LineTotalAmount"); err != nil {
		return s, err
	}
	if s.billingPeriod, err = parseBillingPeriod(el); err != nil {
		return s, err
	}
	if refDocEl := ramChild(el, "AdditionalReferencedDocument"); refDocEl != nil {
		docRef, err := parseDocRef(refDocEl)
		if err != nil {
			return s, err
		}
		s.docRef = docRef
	}
	if accountEl := ramChild(el, "ReceivableSpecifiedTradeAccountingAccount"); accountEl != nil {
		if s.tradeAccountID, err = childTextOptional(accountEl, "ID"); err != nil {
			return s, err
		}
	}
	return s, nil
}

func parseDocRef(el *etree.Element) (*model.DocRef, error) {
	id, err := childTextOptional(el, "IssuerAssignedID")
	if err != nil {
		return nil, err
	}
	typeCode, err := childText(el, "TypeCode")
	if err != nil {
		return nil, err
	}
	if typeCode != "130" {
		return nil, NewInvalidDocumentError("invalid TypeCode: %s", typeCode)
	}
	refTypeCode, err := childTextOptional(el, "ReferenceTypeCode")
	if err != nil {
		return nil, err
	}
	if refTypeCode != "" && !codes.ReferenceQualifierCode(refTypeCode).Valid() {
		return nil, NewInvalidDocumentError("invalid ReferenceTypeCode: %s", refTypeCode)
	}
	return &model.DocRef{
		ID:                id,
		ReferenceTypeCode: codes.ReferenceQualifierCode(refTypeCode),
	}, nil
}
