package opengl

// Main vertex shader: world-space position and normal for lighting, plus the
// light-space position for the shadow lookup.
const vertSrc = `
#version 410 core
layout(location = 0) in vec3 inPosition;
layout(location = 1) in vec3 inNormal;
layout(location = 2) in vec2 inUV;

uniform mat4 viewProj;
uniform mat4 model;
uniform mat3 normalMatrix;
uniform mat4 lightViewProj;

out vec3 fragNormal;
out vec2 fragUV;
out vec3 fragWorldPos;
out vec4 fragLightSpacePos;

void main() {
    vec4 worldPos     = model * vec4(inPosition, 1.0);
    fragWorldPos      = worldPos.xyz;
    fragNormal        = normalMatrix * inNormal;
    fragUV            = inUV;
    fragLightSpacePos = lightViewProj * worldPos;
    gl_Position       = viewProj * worldPos;
}
` + "\x00"

// Fragment shader: Cook-Torrance BRDF lit by point lights and rect-area
// lights, with optional cube map reflection and a PCF shadow term.
//
// Rect-area lights are approximated by the representative point: the point
// of the rectangle closest to the reflected ray, weighted by the cosine at
// the emitter and the solid angle of the rectangle.
const fragSrc = `
#version 410 core
in vec3 fragNormal;
in vec2 fragUV;
in vec3 fragWorldPos;
in vec4 fragLightSpacePos;

out vec4 outColor;

uniform vec3 cameraPos;
uniform vec3 ambientColor;

#define MAX_POINT_LIGHTS 4
uniform int   pointLightCount;
uniform vec3  pointLightPos[MAX_POINT_LIGHTS];
uniform vec3  pointLightColor[MAX_POINT_LIGHTS];
uniform float pointLightIntensity[MAX_POINT_LIGHTS];
uniform float pointLightDistance[MAX_POINT_LIGHTS];
uniform float pointLightDecay[MAX_POINT_LIGHTS];
uniform int   shadowLight; // index of the point light casting the shadow map, -1 for none

#define MAX_RECT_LIGHTS 4
uniform int   rectLightCount;
uniform vec3  rectLightPos[MAX_RECT_LIGHTS];
uniform vec3  rectLightDir[MAX_RECT_LIGHTS];
uniform vec3  rectLightHalfW[MAX_RECT_LIGHTS];
uniform vec3  rectLightHalfH[MAX_RECT_LIGHTS];
uniform vec3  rectLightColor[MAX_RECT_LIGHTS];
uniform float rectLightIntensity[MAX_RECT_LIGHTS];

uniform vec3  matColor;
uniform float matMetalness;
uniform float matRoughness;
uniform bool  unlit;

uniform samplerCube envMap;    // unit 2
uniform bool        hasEnvMap;
uniform float       envIntensity;
uniform float       envMaxLod;

uniform sampler2DShadow shadowMap; // unit 1
uniform bool            hasShadows;
uniform float           shadowTexel;

const float PI = 3.14159265359;

float calcShadow() {
    vec3 p = fragLightSpacePos.xyz / fragLightSpacePos.w;
    p = p * 0.5 + 0.5;
    if (p.z > 1.0 || p.x < 0.0 || p.x > 1.0 || p.y < 0.0 || p.y > 1.0) return 1.0;
    float shadow = 0.0;
    for (int x = -1; x <= 1; x++) {
        for (int y = -1; y <= 1; y++) {
            shadow += texture(shadowMap, vec3(p.xy + vec2(float(x), float(y)) * shadowTexel, p.z - 0.0005));
        }
    }
    return shadow / 9.0;
}

float DistributionGGX(vec3 N, vec3 H, float roughness) {
    float a  = roughness * roughness;
    float a2 = a * a;
    float NdH = max(dot(N, H), 0.0);
    float d   = NdH * NdH * (a2 - 1.0) + 1.0;
    return a2 / (PI * d * d);
}

float GeometrySchlickGGX(float cosTheta, float roughness) {
    float r = roughness + 1.0;
    float k = (r * r) / 8.0;
    return cosTheta / (cosTheta * (1.0 - k) + k);
}

float GeometrySmith(float NdV, float NdL, float roughness) {
    return GeometrySchlickGGX(NdV, roughness) * GeometrySchlickGGX(NdL, roughness);
}

vec3 FresnelSchlick(float cosTheta, vec3 F0) {
    return F0 + (1.0 - F0) * pow(clamp(1.0 - cosTheta, 0.0, 1.0), 5.0);
}

vec3 FresnelSchlickRoughness(float cosTheta, vec3 F0, float roughness) {
    return F0 + (max(vec3(1.0 - roughness), F0) - F0) * pow(clamp(1.0 - cosTheta, 0.0, 1.0), 5.0);
}

vec3 evalPBR(vec3 N, vec3 V, vec3 L, vec3 rad, vec3 albedo, float metallic, float roughness, vec3 F0) {
    float NdL = max(dot(N, L), 0.0);
    if (NdL <= 0.0) return vec3(0.0);

    vec3  H   = normalize(V + L);
    float NdV = max(dot(N, V), 0.0);

    float D = DistributionGGX(N, H, roughness);
    float G = GeometrySmith(NdV, NdL, roughness);
    vec3  F = FresnelSchlick(max(dot(H, V), 0.0), F0);

    vec3 kD       = (vec3(1.0) - F) * (1.0 - metallic);
    vec3 specular = D * G * F / max(4.0 * NdV * NdL, 0.001);
    return (kD * albedo / PI + specular) * rad * NdL;
}

float distanceFalloff(float dist, float cutoff, float decay) {
    float f = 1.0 / max(pow(dist, decay), 0.01);
    if (cutoff > 0.0) {
        f *= pow(clamp(1.0 - pow(dist / cutoff, 4.0), 0.0, 1.0), 2.0);
    }
    return f;
}

// Closest point of the light rectangle to the reflected ray, clamped to the
// rectangle's extent.
vec3 rectRepresentativePoint(int i, vec3 R) {
    vec3 n   = rectLightDir[i];
    float dn = dot(R, n);
    vec3 p;
    if (abs(dn) > 1e-4) {
        float t = dot(rectLightPos[i] - fragWorldPos, n) / dn;
        p = fragWorldPos + R * max(t, 0.0);
    } else {
        p = rectLightPos[i];
    }
    vec3 d   = p - rectLightPos[i];
    vec3 ax  = rectLightHalfW[i];
    vec3 ay  = rectLightHalfH[i];
    float sx = clamp(dot(d, ax) / max(dot(ax, ax), 1e-6), -1.0, 1.0);
    float sy = clamp(dot(d, ay) / max(dot(ay, ay), 1e-6), -1.0, 1.0);
    return rectLightPos[i] + ax * sx + ay * sy;
}

void main() {
    if (unlit) {
        outColor = vec4(matColor, 1.0);
        return;
    }

    vec3 N = normalize(fragNormal);
    vec3 V = normalize(cameraPos - fragWorldPos);
    if (!gl_FrontFacing) N = -N;

    float metallic  = clamp(matMetalness, 0.0, 1.0);
    float roughness = clamp(matRoughness, 0.04, 1.0);
    vec3  albedo    = matColor;
    vec3  F0        = mix(vec3(0.04), albedo, metallic);

    vec3 color = ambientColor * albedo;

    for (int i = 0; i < pointLightCount && i < MAX_POINT_LIGHTS; i++) {
        vec3  toLight = pointLightPos[i] - fragWorldPos;
        float dist    = length(toLight);
        vec3  rad     = pointLightColor[i] * pointLightIntensity[i] *
                        distanceFalloff(dist, pointLightDistance[i], pointLightDecay[i]);
        if (hasShadows && i == shadowLight) {
            rad *= calcShadow();
        }
        color += evalPBR(N, V, normalize(toLight), rad, albedo, metallic, roughness, F0);
    }

    vec3 R = reflect(-V, N);
    for (int i = 0; i < rectLightCount && i < MAX_RECT_LIGHTS; i++) {
        vec3  p       = rectRepresentativePoint(i, R);
        vec3  toLight = p - fragWorldPos;
        float dist    = max(length(toLight), 1e-4);
        vec3  L       = toLight / dist;
        // emits from the front face only
        float emit    = max(dot(-L, rectLightDir[i]), 0.0);
        float area    = 4.0 * length(cross(rectLightHalfW[i], rectLightHalfH[i]));
        float solid   = area / (dist * dist + area);
        vec3  rad     = rectLightColor[i] * rectLightIntensity[i] * emit * solid;
        color += evalPBR(N, V, L, rad, albedo, metallic, roughness, F0);
    }

    if (hasEnvMap) {
        vec3 F  = FresnelSchlickRoughness(max(dot(N, V), 0.0), F0, roughness);
        vec3 kD = (vec3(1.0) - F) * (1.0 - metallic);
        // cube textures are sampled with X mirrored
        vec3 irradiance = textureLod(envMap, vec3(-N.x, N.y, N.z), envMaxLod).rgb;
        vec3 prefilter  = textureLod(envMap, vec3(-R.x, R.y, R.z), roughness * envMaxLod).rgb;
        color += (kD * irradiance * albedo + prefilter * F) * envIntensity;
    }

    outColor = vec4(color, 1.0);
}
` + "\x00"

// depth-only vertex shader for the shadow map pass
const depthVertSrc = `
#version 410 core
layout(location = 0) in vec3 inPosition;
uniform mat4 lightMVP;
void main() {
    gl_Position = lightMVP * vec4(inPosition, 1.0);
}
` + "\x00"

// depth-only fragment shader (OpenGL writes depth implicitly)
const depthFragSrc = `
#version 410 core
void main() {}
` + "\x00"
