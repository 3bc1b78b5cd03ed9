package pricing

import "github.com/vietlinker/listing-service/internal/entity"

// DefaultCatalog returns the purchasable credit packages in declaration
// order. Prices are VND. The catalog is fixed: packages are never created or
// deleted at runtime, so callers may hold the slice for the process lifetime.
func DefaultCatalog() []entity.CreditPackage {
	return []entity.CreditPackage{
		{
			ID:          "starter",
			Name:        "Gói Khởi Đầu",
			Credits:     50,
			Price:       50_000,
			Description: "Phù hợp cho người dùng mới",
			Features: []string{
				"50 credits để đăng tin",
				"Hỗ trợ 24/7",
				"Tin đăng hiển thị 30 ngày",
			},
		},
		{
			ID:            "popular",
			Name:          "Gói Phổ Biến",
			Credits:       150,
			Price:         135_000,
			OriginalPrice: 150_000,
			Discount:      10,
			Popular:       true,
			Description:   "Lựa chọn tốt nhất cho doanh nghiệp nhỏ",
			Features: []string{
				"150 credits để đăng tin",
				"Tin đăng nổi bật",
				"Thống kê chi tiết",
				"Hỗ trợ ưu tiên",
			},
		},
		{
			ID:            "business",
			Name:          "Gói Doanh Nghiệp",
			Credits:       500,
			Price:         450_000,
			OriginalPrice: 500_000,
			Discount:      10,
			Description:   "Dành cho doanh nghiệp lớn",
			Features: []string{
				"500 credits để đăng tin",
				"Tin đăng nổi bật + gấp",
				"Quản lý nhiều tài khoản",
				"API access",
				"Account manager riêng",
			},
		},
		{
			ID:            "premium",
			Name:          "Gói Cao Cấp",
			Credits:       1000,
			Price:         850_000,
			OriginalPrice: 1_000_000,
			Discount:      15,
			Description:   "Không giới hạn cho doanh nghiệp lớn",
			Features: []string{
				"1000 credits để đăng tin",
				"Tất cả tính năng cao cấp",
				"White-label solution",
				"Custom integration",
				"Dedicated support",
			},
		},
	}
}
