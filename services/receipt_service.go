package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"time"

	config "github.com/automatch/portal/configs"
	"github.com/automatch/portal/database"
	"github.com/automatch/portal/models"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// receiptDispatch hands a confirmed payment to the background receipt
// worker. It must only run after the confirming transaction has committed;
// the worker reads the payment back through its own connection.
var receiptDispatch = func(paymentID uuid.UUID) {
	go GenerateLessonReceipt(paymentID)
}

// GenerateLessonReceipt renders a PDF receipt for a confirmed payment and
// stores its URL on the payment row. Runs in the background after payment
// confirmation; failures are logged and leave ReceiptURL empty.
func GenerateLessonReceipt(paymentID uuid.UUID) {
	var payment models.Payment
	err := database.DB.
		Preload("Lesson").
		Preload("Lesson.Instructor").
		Preload("Lesson.Instructor.User").
		Preload("Lesson.Student").
		Where("id = ?", paymentID).
		First(&payment).Error
	if err != nil {
		log.Printf("🔥 Failed to load payment %s for receipt: %v", paymentID, err)
		return
	}

	if payment.Status != models.PaymentStatusConfirmed {
		return
	}
	if payment.ReceiptURL != nil {
		return
	}
	if payment.Lesson == nil || payment.Lesson.Student == nil ||
		payment.Lesson.Instructor == nil {
		log.Printf("🔥 Payment %s is missing lesson associations, skipping receipt", paymentID)
		return
	}

	htmlData, err := generateReceiptHTML(payment)
	if err != nil {
		log.Printf("🔥 Failed to render receipt HTML: %v", err)
		return
	}

	pdfBytes, err := generatePDFFromHTML(htmlData)
	if err != nil {
		log.Printf("🔥 Failed to generate receipt PDF: %v", err)
		return
	}

	uploadURL, err := uploadReceiptToCloudinary(pdfBytes, payment.ID.String())
	if err != nil {
		log.Printf("🔥 Failed to upload receipt to Cloudinary: %v", err)
		return
	}

	err = database.DB.Model(&models.Payment{}).
		Where("id = ?", payment.ID).
		Update("receipt_url", uploadURL).Error
	if err != nil {
		log.Printf("🔥 Failed to save receipt URL for payment %s: %v", payment.ID, err)
	} else {
		log.Printf("✅ Generated receipt for payment %s.", payment.ID)
	}
}

func generateReceiptHTML(payment models.Payment) (string, error) {
	tmpl, err := template.ParseFiles("templates/receipt.html")
	if err != nil {
		return "", err
	}

	lesson := payment.Lesson
	method := "card"
	if payment.PaymentMethod != nil {
		method = *payment.PaymentMethod
	}
	reference := ""
	if payment.TransactionID != nil {
		reference = *payment.TransactionID
	}
	data := struct {
		StudentName    string
		InstructorName string
		LessonDate     string
		Duration       int
		Amount         string
		PaymentMethod  string
		TransactionID  string
		IssuedAt       string
	}{
		StudentName:    lesson.Student.FullName,
		InstructorName: lesson.Instructor.User.FullName,
		LessonDate:     lesson.ScheduledAt.Format("January 2, 2006 15:04"),
		Duration:       lesson.DurationMinutes,
		Amount:         fmt.Sprintf("%.2f", payment.Amount),
		PaymentMethod:  method,
		TransactionID:  reference,
		IssuedAt:       time.Now().Format("January 2, 2006"),
	}

	var renderedHTML bytes.Buffer
	if err := tmpl.Execute(&renderedHTML, data); err != nil {
		return "", err
	}
	return renderedHTML.String(), nil
}

func generatePDFFromHTML(htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}

func uploadReceiptToCloudinary(fileBytes []byte, paymentID string) (string, error) {
	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uploadParams := uploader.UploadParams{
		PublicID:     fmt.Sprintf("receipts/%s_%s", paymentID, uuid.New().String()),
		Folder:       "automatch_receipts",
		ResourceType: "raw",
	}

	uploadResult, err := cld.Upload.Upload(ctx, bytes.NewReader(fileBytes), uploadParams)
	if err != nil {
		return "", err
	}

	return uploadResult.SecureURL, nil
}
