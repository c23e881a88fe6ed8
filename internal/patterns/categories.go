package patterns

// CategoryRule maps a keyword set to a category name. Keywords are matched
// case-insensitively as substrings of the merchant text.
type CategoryRule struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// DefaultCategoryRules is the built-in merchant→category table. Rule order
// is the priority order: a merchant matching several rules resolves to the
// earliest one.
func DefaultCategoryRules() []CategoryRule {
	return []CategoryRule{
		{Name: "餐饮", Keywords: []string{
			"瑞幸", "星巴克", "麦当劳", "肯德基", "美团", "饿了么", "外卖", "餐厅", "食堂",
			"烧烤", "火锅", "咖啡", "奶茶", "蜜雪", "喜茶", "面", "饭", "菜",
		}},
		{Name: "交通", Keywords: []string{
			"滴滴", "出行", "打车", "地铁", "公交", "高铁", "火车", "机票", "航空",
			"加油", "停车", "uber",
		}},
		{Name: "购物", Keywords: []string{
			"淘宝", "天猫", "京东", "拼多多", "苏宁", "超市", "便利店", "商城", "商场", "百货",
		}},
		{Name: "娱乐", Keywords: []string{
			"电影", "游戏", "网易", "腾讯游戏", "steam", "视频", "会员", "爱奇艺", "优酷",
			"bilibili", "网吧",
		}},
		{Name: "通讯", Keywords: []string{
			"移动", "联通", "电信", "话费", "流量", "中国移动", "中国联通", "中国电信",
		}},
		{Name: "居住", Keywords: []string{
			"物业", "水费", "电费", "燃气", "房租", "租房", "物管",
		}},
		{Name: "医疗", Keywords: []string{
			"医院", "药店", "药房", "诊所", "挂号", "医疗",
		}},
		{Name: "教育", Keywords: []string{
			"学校", "培训", "教育", "课程", "书店", "学费",
		}},
	}
}
