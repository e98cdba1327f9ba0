package ledger

import (
	"errors"
	"fmt"

	"storeflex-lite/internal/models"

	"gorm.io/gorm"
)

// Entity types that get human-readable sequential IDs.
const (
	EntityCustomer = "customer"
	EntitySupplier = "supplier"
	EntitySale     = "sale"
	EntityPurchase = "purchase"
	EntityUser     = "user"
)

type idFormat struct {
	prefix string
	width  int
}

var idFormats = map[string]idFormat{
	EntityCustomer: {"cus", 4},
	EntitySupplier: {"sup", 4},
	EntitySale:     {"sale", 6},
	EntityPurchase: {"pur", 6},
	EntityUser:     {"user", 4},
}

// NextID allocates the next formatted id (e.g. "cus0001") for an entity
// type under a tenant. It MUST be called inside the same transaction that
// writes the entity being named: a failed entity write then rolls the
// counter back too, so ids stay gapless and are never double-issued.
func NextID(tx *gorm.DB, entityType string, userID uint) (string, error) {
	format, ok := idFormats[entityType]
	if !ok {
		return "", fmt.Errorf("unknown entity type %q", entityType)
	}

	var counter models.Counter
	err := lockForUpdate(tx).
		Where("user_id = ? AND entity_type = ?", userID, entityType).
		First(&counter).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		counter = models.Counter{UserID: userID, EntityType: entityType, LastID: 0}
		if err := tx.Create(&counter).Error; err != nil {
			return "", err
		}
	} else if err != nil {
		return "", err
	}

	counter.LastID++
	if err := tx.Save(&counter).Error; err != nil {
		return "", err
	}

	return fmt.Sprintf("%s%0*d", format.prefix, format.width, counter.LastID), nil
}
