package cii

import (
	"github.com/beevik/etree"

	"github.com/rezonia/facturx/internal/model"
)

// The four profile parsers share the section parsers and differ only in
// which parsed elements they admit. Elements below the declared profile
// raise a ProfileError naming the offending element.

func parseMinimumInvoice(root *etree.Element) (*model.MinimumInvoice, error) {
	ctx, err := parseDocContext(root)
	if err != nil {
		return nil, err
	}
	info, err := parseDocInfo(root)
	if err != nil {
		return nil, err
	}
	_, agreement, delivery, settlement, err := parseTransaction(root)
	if err != nil {
		return nil, err
	}
	if err := checkMinimumProfile(info, agreement, delivery, settlement); err != nil {
		return nil, err
	}
	inv := buildMinimum(ctx, info, agreement, settlement)
	return &inv, nil
}

func parseBasicWLInvoice(root *etree.Element) (*model.BasicWLInvoice, error) {
	ctx, err := parseDocContext(root)
	if err != nil {
		return nil, err
	}
	info, err := parseDocInfo(root)
	if err != nil {
		return nil, err
	}
	_, agreement, delivery, settlement, err := parseTransaction(root)
	if err != nil {
		return nil, err
	}
	if err := checkDocLevelProfile(model.ProfileBasicWL, agreement, delivery, settlement); err != nil {
		return nil, err
	}
	inv := &model.BasicWLInvoice{
		MinimumInvoice: buildMinimum(ctx, info, agreement, settlement),
	}
	fillBasicWL(inv, info, agreement, delivery, settlement)
	return inv, nil
}

func parseBasicInvoice(root *etree.Element) (*model.BasicInvoice, error) {
	ctx, err := parseDocContext(root)
	if err != nil {
		return nil, err
	}
	info, err := parseDocInfo(root)
	if err != nil {
		return nil, err
	}
	transaction, agreement, delivery, settlement, err := parseTransaction(root)
	if err != nil {
		return nil, err
	}
	p := &parser{currency: settlement.currencyCode}
	lineItems, err := p.parseLineItems(transaction)
	if err != nil {
		return nil, err
	}
	if err := checkDocLevelProfile(model.ProfileBasic, agreement, delivery, settlement); err != nil {
		return nil, err
	}
	inv := &model.BasicInvoice{
		BasicWLInvoice: model.BasicWLInvoice{
			MinimumInvoice: buildMinimum(ctx, info, agreement, settlement),
		},
		LineItems: lineItems,
	}
	fillBasicWL(&inv.BasicWLInvoice, info, agreement, delivery, settlement)
	return inv, nil
}

func parseEN16931Invoice(root *etree.Element) (*model.EN16931Invoice, error) {
	ctx, err := parseDocContext(root)
	if err != nil {
		return nil, err
	}
	info, err := parseDocInfo(root)
	if err != nil {
		return nil, err
	}
	transaction, agreement, delivery, settlement, err := parseTransaction(root)
	if err != nil {
		return nil, err
	}
	p := &parser{currency: settlement.currencyCode}
	lineItems, err := p.parseEN16931LineItems(transaction)
	if err != nil {
		return nil, err
	}
	inv := &model.EN16931Invoice{
		BasicInvoice: model.BasicInvoice{
			BasicWLInvoice: model.BasicWLInvoice{
				MinimumInvoice: buildMinimum(ctx, info, agreement, settlement),
			},
			LineItems: lineItems,
		},
		ReceivingAdviceID: delivery.receivingAdviceID,
		RoundingAmount:    settlement.summation.rounding,
		SellerOrderID:     agreement.sellerOrderID,
		ReferencedDocs:    agreement.referencedDocs,
		ProcuringProject:  agreement.procuringProject,
		TaxCurrencyCode:   settlement.taxCurrencyCode,
	}
	fillBasicWL(&inv.BasicWLInvoice, info, agreement, delivery, settlement)
	return inv, nil
}

func buildMinimum(ctx docContext, info docInfo, agreement tradeAgreement, settlement tradeSettlement) model.MinimumInvoice {
	return model.MinimumInvoice{
		InvoiceNumber:     info.id,
		TypeCode:          info.typeCode,
		InvoiceDate:       info.issueDate,
		Seller:            agreement.seller,
		Buyer:             agreement.buyer,
		CurrencyCode:      settlement.currencyCode,
		LineTotal:         settlement.summation.lineTotal,
		TaxBasisTotal:     settlement.summation.taxBasisTotal,
		TaxTotals:         settlement.summation.taxTotals,
		GrandTotal:        settlement.summation.grandTotal,
		DuePayable:        settlement.summation.duePayable,
		BusinessProcessID: ctx.businessProcessID,
		BuyerReference:    agreement.buyerReference,
		BuyerOrderID:      agreement.buyerOrderID,
	}
}

func fillBasicWL(inv *model.BasicWLInvoice, info docInfo, agreement tradeAgreement, delivery tradeDelivery, settlement tradeSettlement) {
	inv.Tax = settlement.tax
	inv.ChargeTotal = settlement.summation.chargeTotal
	inv.AllowanceTotal = settlement.summation.allowanceTotal
	inv.PrepaidAmount = settlement.summation.prepaid
	inv.Payee = settlement.payee
	inv.DeliveryDate = delivery.deliveryDate
	inv.BillingPeriod = settlement.billingPeriod
	inv.Allowances = settlement.allowances
	inv.Charges = settlement.charges
	inv.Notes = info.notes
	inv.SellerTaxRepresentative = agreement.sellerTaxRep
	inv.ContractID = agreement.contractID
	inv.ShipTo = delivery.shipTo
	inv.DespatchAdviceID = delivery.despatchAdviceID
	inv.SEPAReference = settlement.creditorReferenceID
	inv.PaymentReference = settlement.paymentReference
	inv.PaymentMeans = settlement.paymentMeans
	inv.PaymentTerms = settlement.paymentTerms
	inv.PrecedingInvoices = settlement.precedingInvoices
	inv.ReceiverAccountingIDs = settlement.receiverAccountingIDs
}

func checkMinimumProfile(info docInfo, agreement tradeAgreement, delivery tradeDelivery, settlement tradeSettlement) error {
	const p = model.ProfileMinimum
	if len(info.notes) > 0 {
		return NewProfileError(p, "IncludedNote element is not allowed")
	}
	if agreement.sellerTaxRep != nil {
		return NewProfileError(p, "SellerTaxRepresentativeTradeParty element is not allowed")
	}
	if agreement.contractID != "" {
		return NewProfileError(p, "ContractReferencedDocument element is not allowed")
	}
	if agreement.sellerOrderID != "" {
		return NewProfileError(p, "SellerOrderReferencedDocument element is not allowed")
	}
	if len(agreement.referencedDocs) > 0 {
		return NewProfileError(p, "AdditionalReferencedDocument element is not allowed")
	}
	if agreement.procuringProject != nil {
		return NewProfileError(p, "SpecifiedProcuringProject element is not allowed")
	}
	if delivery.shipTo != nil {
		return NewProfileError(p, "ShipToTradeParty element is not allowed")
	}
	if delivery.deliveryDate != nil {
		return NewProfileError(p, "delivery date is not allowed")
	}
	if delivery.despatchAdviceID != "" {
		return NewProfileError(p, "DespatchAdviceReferencedDocument element is not allowed")
	}
	if delivery.receivingAdviceID != "" {
		return NewProfileError(p, "ReceivingAdviceReferencedDocument element is not allowed")
	}
	if settlement.creditorReferenceID != "" {
		return NewProfileError(p, "CreditorReferenceID element is not allowed")
	}
	if settlement.paymentReference != "" {
		return NewProfileError(p, "PaymentReference element is not allowed")
	}
	if settlement.taxCurrencyCode != "" {
		return NewProfileError(p, "TaxCurrencyCode element is not allowed")
	}
	if settlement.payee != nil {
		return NewProfileError(p, "PayeeTradeParty element is not allowed")
	}
	if len(settlement.paymentMeans) > 0 {
		return NewProfileError(p, "SpecifiedTradeSettlementPaymentMeans element is not allowed")
	}
	if len(settlement.tax) > 0 {
		return NewProfileError(p, "ApplicableTradeTax element is not allowed")
	}
	if settlement.billingPeriod != nil {
		return NewProfileError(p, "billing period is not allowed")
	}
	if len(settlement.allowances) > 0 || len(settlement.charges) > 0 {
		return NewProfileError(p, "SpecifiedTradeAllowanceCharge element is not allowed")
	}
	if settlement.paymentTerms != nil {
		return NewProfileError(p, "SpecifiedTradePaymentTerms element is not allowed")
	}
	if settlement.summation.chargeTotal != nil {
		return NewProfileError(p, "ChargeTotalAmount element is not allowed")
	}
	if settlement.summation.allowanceTotal != nil {
		return NewProfileError(p, "AllowanceTotalAmount element is not allowed")
	}
	if settlement.summation.prepaid != nil {
		return NewProfileError(p, "TotalPrepaidAmount element is not allowed")
	}
	if settlement.summation.rounding != nil {
		return NewProfileError(p, "RoundingAmount element is not allowed")
	}
	if len(settlement.precedingInvoices) > 0 {
		return NewProfileError(p, "InvoiceReferencedDocument element is not allowed")
	}
	if len(settlement.receiverAccountingIDs) > 0 {
		return NewProfileError(p, "ReceivableSpecifiedTradeAccountingAccount element is not allowed")
	}
	return nil
}

// checkDocLevelProfile rejects the EN 16931-only document-level elements
// for the BASIC WL and BASIC profiles.
func checkDocLevelProfile(p model.Profile, agreement tradeAgreement, delivery tradeDelivery, settlement tradeSettlement) error {
	if agreement.sellerOrderID != "" {
		return NewProfileError(p, "SellerOrderReferencedDocument element is not allowed")
	}
	if len(agreement.referencedDocs) > 0 {
		return NewProfileError(p, "AdditionalReferencedDocument element is not allowed")
	}
	if agreement.procuringProject != nil {
		return NewProfileError(p, "SpecifiedProcuringProject element is not allowed")
	}
	if delivery.receivingAdviceID != "" {
		return NewProfileError(p, "ReceivingAdviceReferencedDocument element is not allowed")
	}
	if settlement.taxCurrencyCode != "" {
		return NewProfileError(p, "TaxCurrencyCode element is not allowed")
	}
	if settlement.summation.rounding != nil {
		return NewProfileError(p, "RoundingAmount element is not allowed")
	}
	return nil
}
