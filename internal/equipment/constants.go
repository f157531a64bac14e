package equipment

const (
	ErrMsgEntryWithoutItem    = "inventory entry %s has no item definition"
	ErrMsgNoInstanceToDegrade = "%w: non-stackable item %s has quantity %d but no instance to degrade"
	ErrMsgNoUnitToConsume     = "%w: stackable item %s has no quantity to consume"
	ErrMsgBadMaxDurability    = "%w: item %s has maxDurability %d"
	ErrMsgNegativeCredit      = "%w: cannot credit %d of item %s"
)

const (
	LogMsgMisconfiguredPerUse = "durabilityPerUse exceeds maxDurability, using 1"
)
