// notices.go - User-facing status messages shown after form submissions
package api

const (
	noticeNoCSV          = "No CSV file selected"
	noticeBadCSVType     = "Invalid file type. Please upload a CSV file."
	noticeCSVLoaded      = "CSV uploaded successfully! Loaded %d records."
	noticeCSVError       = "Error loading CSV: %v"
	noticeNoPhotos       = "No photos selected"
	noticeBadPhotoType   = "Invalid photo type: %s"
	noticePhotoExists    = "Photo %s already exists. Skipped."
	noticePhotoError     = "Error saving photo %s: %v"
	noticePhotosUploaded = "Uploaded %d photos successfully!"
	noticeNotFound       = "Person not found"
	noticeUpdated        = "Updated information for %s"
	noticeNoPhoto        = "No photo selected"
	noticeBadPhoto       = "Invalid photo file"
	noticePhotoAdded     = "Photo added for %s"
	noticeRemoved        = "Removed %s from database"
	noticeBadSalary      = "Invalid salary value: %s"
)
