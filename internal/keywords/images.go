package keywords

import (
	"hash/fnv"

	"SustainabilityScanner/internal/domain"
)

const imageQuery = "?auto=compress&cs=tinysrgb&w=800"

var pillarImages = map[domain.Pillar][]string{
	domain.PillarEnvironmental: {
		"https://images.pexels.com/photos/356036/pexels-photo-356036.jpeg" + imageQuery,
		"https://images.pexels.com/photos/414837/pexels-photo-414837.jpeg" + imageQuery,
		"https://images.pexels.com/photos/1108572/pexels-photo-1108572.jpeg" + imageQuery,
		"https://images.pexels.com/photos/9800029/pexels-photo-9800029.jpeg" + imageQuery,
	},
	domain.PillarSocial: {
		"https://images.pexels.com/photos/1459653/pexels-photo-1459653.jpeg" + imageQuery,
		"https://images.pexels.com/photos/7088793/pexels-photo-7088793.jpeg" + imageQuery,
		"https://images.pexels.com/photos/3184360/pexels-photo-3184360.jpeg" + imageQuery,
		"https://images.pexels.com/photos/6646918/pexels-photo-6646918.jpeg" + imageQuery,
	},
	domain.PillarEconomic: {
		"https://images.pexels.com/photos/3184465/pexels-photo-3184465.jpeg" + imageQuery,
		"https://images.pexels.com/photos/259027/pexels-photo-259027.jpeg" + imageQuery,
		"https://images.pexels.com/photos/3943716/pexels-photo-3943716.jpeg" + imageQuery,
	},
}

// PillarImages lists the stock images for a pillar; unknown pillars get the
// environmental set.
func PillarImages(pillar domain.Pillar) []string {
	if images, ok := pillarImages[pillar]; ok {
		return images
	}
	return pillarImages[domain.PillarEnvironmental]
}

// PillarImage picks one of the pillar's images. The choice is stable for a
// given key so re-assembling an article keeps its image.
func PillarImage(pillar domain.Pillar, key string) string {
	images := PillarImages(pillar)
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return images[h.Sum32()%uint32(len(images))]
}
