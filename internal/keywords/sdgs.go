package keywords

import (
	"fmt"

	"SustainabilityScanner/internal/domain"
)

// SDGCount is the number of UN Sustainable Development Goals.
const SDGCount = 17

var sdgMetadata = map[int]domain.SDGRef{
	1:  {ID: 1, Title: "No Poverty", Description: "End poverty in all its forms everywhere", Color: "#E5243B", Icon: "HandHeart"},
	2:  {ID: 2, Title: "Zero Hunger", Description: "End hunger, achieve food security and improved nutrition", Color: "#DDA63A", Icon: "Wheat"},
	3:  {ID: 3, Title: "Good Health and Well-being", Description: "Ensure healthy lives and promote well-being for all", Color: "#4C9F38", Icon: "Heart"},
	4:  {ID: 4, Title: "Quality Education", Description: "Ensure inclusive and equitable quality education", Color: "#C5192D", Icon: "GraduationCap"},
	5:  {ID: 5, Title: "Gender Equality", Description: "Achieve gender equality and empower all women and girls", Color: "#FF3A21", Icon: "Users"},
	6:  {ID: 6, Title: "Clean Water and Sanitation", Description: "Ensure availability and sustainable management of water", Color: "#26BDE2", Icon: "Droplets"},
	7:  {ID: 7, Title: "Affordable and Clean Energy", Description: "Ensure access to affordable, reliable, sustainable energy", Color: "#FCC30B", Icon: "Zap"},
	8:  {ID: 8, Title: "Decent Work and Economic Growth", Description: "Promote sustained, inclusive economic growth", Color: "#A21942", Icon: "TrendingUp"},
	9:  {ID: 9, Title: "Industry, Innovation and Infrastructure", Description: "Build resilient infrastructure, promote innovation", Color: "#FD6925", Icon: "Building"},
	10: {ID: 10, Title: "Reduced Inequality", Description: "Reduce inequality within and among countries", Color: "#DD1367", Icon: "Scale"},
	11: {ID: 11, Title: "Sustainable Cities and Communities", Description: "Make cities and human settlements sustainable", Color: "#FD9D24", Icon: "Building2"},
	12: {ID: 12, Title: "Responsible Consumption and Production", Description: "Ensure sustainable consumption and production patterns", Color: "#BF8B2E", Icon: "Recycle"},
	13: {ID: 13, Title: "Climate Action", Description: "Take urgent action to combat climate change", Color: "#3F7E44", Icon: "Thermometer"},
	14: {ID: 14, Title: "Life Below Water", Description: "Conserve and sustainably use the oceans, seas", Color: "#0A97D9", Icon: "Fish"},
	15: {ID: 15, Title: "Life on Land", Description: "Protect, restore and promote sustainable use of ecosystems", Color: "#56C02B", Icon: "TreePine"},
	16: {ID: 16, Title: "Peace, Justice and Strong Institutions", Description: "Promote peaceful and inclusive societies", Color: "#00689D", Icon: "Scale3d"},
	17: {ID: 17, Title: "Partnerships for the Goals", Description: "Strengthen the means of implementation", Color: "#19486A", Icon: "Handshake"},
}

// SDG returns metadata for an SDG id. Unknown ids get a neutral placeholder.
func SDG(id int) domain.SDGRef {
	if ref, ok := sdgMetadata[id]; ok {
		return ref
	}
	return domain.SDGRef{ID: id, Title: fmt.Sprintf("SDG %d", id), Color: "#3B82F6", Icon: "Target"}
}

// SDGIDs returns 1..17 in ascending order.
func SDGIDs() []int {
	ids := make([]int, SDGCount)
	for i := range ids {
		ids[i] = i + 1
	}
	return ids
}
