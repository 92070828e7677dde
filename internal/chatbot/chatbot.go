package chatbot

import (
	"math/rand"
	"regexp"
	"strings"
	"sync"
)

// 话题知识库：每个话题准备若干条候选回复
var knowledgeBase = map[string][]string{
	"greeting": {
		"Hello! How can I help you with your car rental today?",
		"Hi there! Looking to rent a car? I'm here to assist you.",
		"Welcome to AI Car Rentals! How may I help you today?",
	},
	"booking_process": {
		"To make a booking, simply select a car and click on the 'Book Now' button. You'll need to provide your rental dates and driver information.",
		"Booking is easy! Browse our selection, choose a car, select your dates, and follow the checkout process. Need help with a specific step?",
		"Our booking process takes just 3 steps: 1) Select a car 2) Choose dates and location 3) Enter your details and payment information.",
	},
	"pricing": {
		"Our prices vary based on the car model, rental duration, and season. You can check out our 'Smart Pricing' page for detailed information.",
		"We use AI-driven dynamic pricing that considers factors like demand, day of the week, and seasonality. The best deals are often found by booking in advance!",
		"Rental rates start from $65/day for economy cars and go up to $300/day for luxury vehicles. We also offer discounts for weekly and monthly rentals.",
	},
	"payment_methods": {
		"We accept all major credit cards, PayPal, and Apple Pay. Payment is processed securely at the time of booking.",
		"You can pay using Visa, Mastercard, American Express, Discover, PayPal or Apple Pay. We do not accept cash payments for reservations.",
	},
	"cancellation_policy": {
		"Cancellations made 48 hours before the pickup time receive a full refund. Late cancellations may incur a fee.",
		"Our flexible cancellation policy allows free cancellation up to 48 hours before your rental. After that, a fee equal to one day's rental applies.",
	},
	"insurance_options": {
		"We offer various insurance packages starting from $15 per day. Full coverage is recommended for peace of mind.",
		"Insurance options include Basic (covers damages up to $15,000), Premium (covers damages up to $35,000), and Comprehensive (full coverage with no deductible).",
	},
	"rental_requirements": {
		"To rent a car, you need to be at least 21 years old, have a valid driver's license, and a credit card in your name.",
		"Requirements include: minimum age of 21 (25 for luxury vehicles), a valid driver's license held for at least 1 year, and a credit card for the security deposit.",
	},
	"pickup_return": {
		"You can pick up and return your rental at any of our locations during business hours (8AM-8PM). After-hours service is available at select locations.",
		"Pick up and return is available at the same location, or you can opt for our one-way rental service for an additional fee.",
	},
	"car_types": {
		"We offer a variety of car types: Economy, Compact, Sedan, SUV, Luxury, and Electric vehicles to suit every need and budget.",
		"Our fleet includes everything from fuel-efficient compact cars to spacious SUVs and luxury vehicles. We also have a growing selection of electric cars.",
	},
	"locations": {
		"We have rental locations in all major cities and airports. You can check our 'Locations' page for specific addresses and contact information.",
		"Find us at most major airports and downtown locations in major metropolitan areas. We offer free shuttle service from airport terminals.",
	},
	"additional_services": {
		"We offer additional services like GPS navigation ($5/day), child seats ($7/day), additional drivers ($10/day), and roadside assistance ($7/day).",
		"Enhance your rental with our add-ons: WiFi hotspot, child safety seats, premium insurance, ski racks, and more. Add these during checkout.",
	},
	"ai_features": {
		"Our AI features include personalized car recommendations, virtual tours, dynamic pricing, and predictive maintenance for worry-free rentals.",
		"We use AI to enhance your experience through personalized recommendations, optimal pricing, and ensuring all our vehicles are maintained proactively.",
	},
	"best_deals": {
		"For the best deals, book in advance, check our weekly specials, or sign up for our loyalty program to earn points and get exclusive discounts.",
		"Save up to 25% by booking at least a week in advance, and look for our off-season specials. Sign up for our newsletter to receive exclusive offers.",
	},
	"help": {
		"I can help with booking cars, answering questions about our policies, providing information about our fleet, or connecting you with customer service.",
		"Need assistance? I can help with reservations, explain our policies, recommend cars, or provide information about locations and services.",
	},
}

// 关键词到话题的映射，按声明顺序匹配
var keywordTopics = []struct {
	pattern *regexp.Regexp
	topic   string
}{
	{regexp.MustCompile(`hello|\bhi\b|\bhey\b|greetings`), "greeting"},
	{regexp.MustCompile(`book|booking|reserve|reservation|rent|renting`), "booking_process"},
	{regexp.MustCompile(`price|pricing|cost|rate|fee|charge|how much`), "pricing"},
	{regexp.MustCompile(`\bpay\b|payment|credit card|debit card|mastercard|visa|amex|paypal`), "payment_methods"},
	{regexp.MustCompile(`cancel|cancellation|refund|money back`), "cancellation_policy"},
	{regexp.MustCompile(`insurance|coverage|protect|protection`), "insurance_options"},
	{regexp.MustCompile(`requirements|qualify|qualification|need to|required|driver's license|driving license|\bage\b`), "rental_requirements"},
	{regexp.MustCompile(`pickup|return|drop off|dropping off|collect|collecting`), "pickup_return"},
	{regexp.MustCompile(`car type|vehicle type|car category|model|luxury|economy|suv|sedan|compact|electric`), "car_types"},
	{regexp.MustCompile(`location|branch|airport|city|where`), "locations"},
	{regexp.MustCompile(`additional service|extra|add on|addon|gps|child seat|wifi|hotspot`), "additional_services"},
	{regexp.MustCompile(`\bai\b|artificial intelligence|smart|intelligent|feature`), "ai_features"},
	{regexp.MustCompile(`deal|discount|offer|promo|promotion|coupon|sale|cheap|save|saving|bargain`), "best_deals"},
	{regexp.MustCompile(`help|assist|support|guidance`), "help"},
}

var exitCommands = []string{
	"bye", "goodbye", "exit", "quit", "end", "stop", "that's all", "thank you", "thanks bye",
}

var defaultResponses = []string{
	"I'm not sure I understand. Could you please rephrase your question?",
	"I'd be happy to help with that. Could you provide more details?",
	"I specialize in car rental information. Could you ask me something about our services?",
	"I'm still learning! Could you try asking that in a different way?",
	"I want to make sure I help you correctly. Could you clarify your question?",
}

const exitResponse = "Thank you for chatting with us! If you have more questions later, feel free to return."

var durationPattern = regexp.MustCompile(`(\d+)\s*(day|week|month)`)

// Bot 关键词问答机器人
// 回复文案本身是固定的，候选回复之间的选择来自指定种子的随机源，
// 保证测试可复现
type Bot struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New 用给定种子创建机器人
func New(seed int64) *Bot {
	return &Bot{rng: rand.New(rand.NewSource(seed))}
}

// Reply 处理一条用户消息并返回回复
func (b *Bot) Reply(message string) string {
	msg := strings.ToLower(strings.TrimSpace(message))

	if isExitCommand(msg) {
		return exitResponse
	}

	topic := matchTopic(msg)
	if topic == "" {
		return b.pick(defaultResponses)
	}

	reply := b.pick(knowledgeBase[topic])
	if suffix := personalize(msg); suffix != "" {
		reply += " " + suffix
	}
	return reply
}

func (b *Bot) pick(candidates []string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return candidates[b.rng.Intn(len(candidates))]
}

func isExitCommand(msg string) bool {
	for _, cmd := range exitCommands {
		if strings.Contains(msg, cmd) {
			return true
		}
	}
	return false
}

func matchTopic(msg string) string {
	for _, kt := range keywordTopics {
		if kt.pattern.MatchString(msg) {
			return kt.topic
		}
	}
	return ""
}

// personalize 从消息中提取偏好信息，生成个性化补充
func personalize(msg string) string {
	var parts []string

	switch {
	case strings.Contains(msg, "suv"):
		parts = append(parts, "Based on your interest in SUVs, I recommend checking out our BMW X5 or Jeep Wrangler.")
	case strings.Contains(msg, "electric"):
		parts = append(parts, "Our electric vehicle selection includes the Tesla Model 3.")
	case strings.Contains(msg, "luxury"):
		parts = append(parts, "For luxury, check out our Mercedes-Benz S-Class.")
	}

	if strings.Contains(msg, "cheap") || strings.Contains(msg, "affordable") || strings.Contains(msg, "budget") {
		parts = append(parts, "Our economy cars offer the best value starting at just $65/day.")
	}

	if m := durationPattern.FindStringSubmatch(msg); m != nil {
		unit := m[2]
		if unit == "week" || unit == "month" {
			parts = append(parts, "Long-term rentals like yours qualify for our special monthly rates.")
		}
	}

	return strings.Join(parts, " ")
}
