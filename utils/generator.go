package utils

import (
	"math/rand"
	"time"

	"github.com/automatch/portal/models"
	"gorm.io/gorm"
)

const referenceSuffixLength = 10
const letterBytes = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateTransactionReference returns a payment reference that is unique
// across the payments table. Must run inside the transaction that creates
// the payment row.
func GenerateTransactionReference(tx *gorm.DB) (string, error) {
	seededRand := rand.New(rand.NewSource(time.Now().UnixNano()))

	for {
		b := make([]byte, referenceSuffixLength)
		for i := range b {
			b[i] = letterBytes[seededRand.Intn(len(letterBytes))]
		}
		reference := "PAY-" + string(b)

		var payment models.Payment
		err := tx.Where("transaction_id = ?", reference).First(&payment).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return reference, nil
			}
			return "", err
		}
	}
}
