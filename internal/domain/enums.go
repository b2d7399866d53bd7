package domain

// ShipmentStatus represents the lifecycle of a shipment.
type ShipmentStatus string

const (
	ShipmentStatusPlanned   ShipmentStatus = "planned"
	ShipmentStatusInTransit ShipmentStatus = "in_transit"
	ShipmentStatusArrived   ShipmentStatus = "arrived"
	ShipmentStatusCleared   ShipmentStatus = "cleared"
	ShipmentStatusDelivered ShipmentStatus = "delivered"
)

// CostType categorizes a cost record.
type CostType string

const (
	CostTypePrepayments CostType = "PREPAYMENTS"
	CostTypeInland      CostType = "INLAND"
	CostTypeBroker      CostType = "BROKER"
	CostTypeAir         CostType = "AIR"
	// CostTypeFreight is a legacy value still present in imported data.
	CostTypeFreight CostType = "FREIGHT"
)

// ValidCostTypes lists the cost types accepted on input.
var ValidCostTypes = map[CostType]bool{
	CostTypePrepayments: true,
	CostTypeInland:      true,
	CostTypeBroker:      true,
	CostTypeAir:         true,
	CostTypeFreight:     true,
}

// CostStatus represents the payment workflow state of a cost record.
type CostStatus string

const (
	CostStatusPending   CostStatus = "pending"
	CostStatusScheduled CostStatus = "scheduled"
	CostStatusPaid      CostStatus = "paid"
)

// MatchLevel is the tri-state result of a container comparison.
type MatchLevel string

const (
	// MatchFull means every container listed on the invoice was found on the shipment.
	MatchFull MatchLevel = "full"
	// MatchPartial means some but not all invoice containers were found.
	MatchPartial MatchLevel = "partial"
	// MatchNone means no invoice container was found on the shipment.
	MatchNone MatchLevel = "none"
	// MatchNotChecked means the invoice lists no containers to compare.
	MatchNotChecked MatchLevel = "not_checked"
)

// Collection identifies one of the record collections for change notification
// and shared-field broadcast.
type Collection string

const (
	CollectionPreAlerts         Collection = "pre_alerts"
	CollectionVesselTracking    Collection = "vessel_tracking"
	CollectionCustomsClearance  Collection = "customs_clearance"
	CollectionShipments         Collection = "shipments"
	CollectionEquipmentTracking Collection = "equipment_tracking"
	CollectionCosts             Collection = "costs"
	CollectionSuppliers         Collection = "suppliers"
)
