package response

import "github.com/gin-gonic/gin"

// Success wraps payloads in the envelope every booking and catalog
// endpoint speaks: {"success": true, "data": ...}.
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

// Error writes a rejection with a machine-readable code (SLOT_TAKEN,
// VOUCHER_EXPIRED, ...) clients can branch on. The message is for
// humans only and never carries query or constraint text.
func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// ErrorWithDetails additionally attaches structured details, e.g.
// per-field validation failures.
func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}
